package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	AdminEmail  string
	JWTSecret   string
	SessionTTL  time.Duration

	IdentityProvider      string
	IdentityToolkitURL    string
	IdentityToolkitAPIKey string

	RedisURL string

	OrderDayTimezone string
	OrderDayLocation *time.Location
	StatusPolicy     string
	DeliveryFee      decimal.Decimal

	LoginRateLimit  float64
	LoginRateBurst  int
	TrustedProxies  []string
	SnapshotWorkers int
	ShutdownTimeout time.Duration
	LogLevel        string
}

const (
	IdentityProviderLocal   = "local"
	IdentityProviderToolkit = "identitytoolkit"

	StatusPolicyPermissive = "permissive"
	StatusPolicyStrict     = "strict"
)

const (
	defaultRunAddress         = ":8080"
	defaultSessionTTL         = 24 * time.Hour
	defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	defaultOrderDayTimezone   = "Asia/Kuala_Lumpur"
	defaultDeliveryFee        = "3.99"
	defaultLoginRateLimit     = 2.0
	defaultLoginRateBurst     = 5
	defaultSnapshotWorkers    = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
)

// Load parses configuration from a .env file, environment variables and flags.
// Variables already present in the environment win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		AdminEmail:            getString(lookup, "ADMIN_EMAIL", ""),
		JWTSecret:             getString(lookup, "JWT_SECRET", ""),
		SessionTTL:            getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		IdentityProvider:      getString(lookup, "IDENTITY_PROVIDER", IdentityProviderLocal),
		IdentityToolkitURL:    getString(lookup, "IDENTITY_TOOLKIT_URL", defaultIdentityToolkitURL),
		IdentityToolkitAPIKey: getString(lookup, "IDENTITY_TOOLKIT_API_KEY", ""),
		RedisURL:              getString(lookup, "REDIS_URL", ""),
		OrderDayTimezone:      getString(lookup, "ORDER_DAY_TIMEZONE", defaultOrderDayTimezone),
		StatusPolicy:          getString(lookup, "STATUS_POLICY", StatusPolicyPermissive),
		LoginRateLimit:        getFloat(lookup, "LOGIN_RATE_LIMIT", defaultLoginRateLimit),
		LoginRateBurst:        getInt(lookup, "LOGIN_RATE_BURST", defaultLoginRateBurst),
		SnapshotWorkers:       getInt(lookup, "SNAPSHOT_WORKERS", defaultSnapshotWorkers),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("eatery", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		trustedProxiesStr  = getString(lookup, "TRUSTED_PROXIES", "")
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		deliveryFeeStr     = getString(lookup, "DELIVERY_FEE", defaultDeliveryFee)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "Email of the restaurant administrator")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing session tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime")
	fs.StringVar(&cfg.IdentityProvider, "identity", cfg.IdentityProvider, "Identity provider: local or identitytoolkit")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for revoked sessions")
	fs.StringVar(&cfg.OrderDayTimezone, "tz", cfg.OrderDayTimezone, "Timezone used to assign order days")
	fs.StringVar(&cfg.StatusPolicy, "status-policy", cfg.StatusPolicy, "Order status policy: permissive or strict")
	fs.StringVar(&deliveryFeeStr, "delivery-fee", deliveryFeeStr, "Delivery fee shown in the cart preview")
	fs.StringVar(&trustedProxiesStr, "trusted-proxies", trustedProxiesStr, "Comma separated proxy IPs or CIDRs allowed to set X-Forwarded-For")
	fs.IntVar(&cfg.SnapshotWorkers, "snapshot-workers", cfg.SnapshotWorkers, "Number of live snapshot workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DeliveryFee, err = decimal.NewFromString(deliveryFeeStr); err != nil {
		return nil, fmt.Errorf("invalid delivery fee: %w", err)
	}

	if cfg.OrderDayLocation, err = time.LoadLocation(cfg.OrderDayTimezone); err != nil {
		return nil, fmt.Errorf("invalid order day timezone: %w", err)
	}

	if cfg.TrustedProxies, err = parseProxies(trustedProxiesStr); err != nil {
		return nil, err
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SnapshotWorkers <= 0 {
		cfg.SnapshotWorkers = defaultSnapshotWorkers
	}

	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = defaultLoginRateLimit
	}

	if cfg.LoginRateBurst <= 0 {
		cfg.LoginRateBurst = defaultLoginRateBurst
	}

	if cfg.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	// Admin rights ride on the token's email claim, so a guessable secret
	// would let anyone sign an admin session.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be provided")
	}

	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("admin email must be provided")
	}

	switch cfg.StatusPolicy {
	case StatusPolicyPermissive, StatusPolicyStrict:
	default:
		return nil, fmt.Errorf("unknown status policy %q", cfg.StatusPolicy)
	}

	switch cfg.IdentityProvider {
	case IdentityProviderLocal:
	case IdentityProviderToolkit:
		if cfg.IdentityToolkitAPIKey == "" {
			return nil, fmt.Errorf("identity toolkit api key must be provided")
		}
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.IdentityProvider)
	}

	return cfg, nil
}

// parseProxies splits a comma separated list of IPs and CIDRs. An empty list
// means no proxy is trusted.
func parseProxies(raw string) ([]string, error) {
	var proxies []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, _, err := net.ParseCIDR(part); err != nil && net.ParseIP(part) == nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", part)
		}
		proxies = append(proxies, part)
	}
	return proxies, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
