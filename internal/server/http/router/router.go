package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/config"
	"github.com/polkiloo/eatery/internal/metrics"
	"github.com/polkiloo/eatery/internal/server/http/handlers"
	"github.com/polkiloo/eatery/internal/server/http/middleware"
)

const (
	maxRequestBody = 1 << 20
	healthTimeout  = 2 * time.Second
	livePath       = "/api/admin/live"
	metricsPath    = "/metrics"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Params lists everything the router mounts.
type Params struct {
	fx.In

	Facade   handlers.RestaurantFacade
	Sessions middleware.SessionResolver
	Guard    middleware.PageGuard
	Feed     handlers.LiveFeed
	QR       handlers.QREncoder
	Metrics  *metrics.Metrics
	Health   HealthChecker
	Config   *config.Config
	Logger   *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	// Client IPs key the login throttle; forwarding headers count only from
	// configured proxies.
	if err := engine.SetTrustedProxies(p.Config.TrustedProxies); err != nil {
		p.Logger.Error("invalid trusted proxies, trusting none", slog.String("error", err.Error()))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{livePath, metricsPath})))
	engine.Use(middleware.Session(p.Sessions))

	engine.GET(metricsPath, gin.WrapH(p.Metrics.Handler()))
	engine.GET("/healthz", healthHandler(p.Health))

	registerPages(engine, p)
	registerAPI(engine, p)

	return engine
}

func registerPages(engine *gin.Engine, p Params) {
	pages := handlers.NewPageHandler(p.Facade)

	group := engine.Group("/")
	group.Use(middleware.RouteGuard(p.Guard))
	group.GET("/", pages.Home)
	group.GET("/menu", pages.Menu)
	group.GET("/cart", pages.Cart)
	group.GET("/about", pages.About)
	group.GET("/login", pages.Login)
	group.GET("/signup", pages.SignUp)
	group.GET("/access-denied", pages.AccessDenied)
	group.GET("/profile", pages.Profile)
	group.GET("/admin", pages.Dashboard)
	group.GET("/admin/orders", pages.Orders)
}

func registerAPI(engine *gin.Engine, p Params) {
	authHandler := handlers.NewAuthHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.QR)
	menuHandler := handlers.NewMenuHandler(p.Facade)
	profileHandler := handlers.NewProfileHandler(p.Facade)
	adminHandler := handlers.NewAdminHandler(p.Facade)
	liveHandler := handlers.NewLiveHandler(p.Feed, p.Logger)

	limiter := middleware.NewRateLimiter(p.Config.LoginRateLimit, p.Config.LoginRateBurst)
	throttle := middleware.RateLimit(limiter, p.Metrics.LoginThrottled)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", throttle, authHandler.SignUp)
	auth.POST("/login", throttle, authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	api.GET("/menu", menuHandler.Menu)
	api.POST("/cart/preview", menuHandler.Preview)
	api.GET("/cart/form", orderHandler.Form)

	api.POST("/orders", orderHandler.Submit)
	api.GET("/orders/:id", middleware.AuthRequired(), orderHandler.Get)
	api.GET("/orders/:id/qr", orderHandler.QRCode)

	profile := api.Group("/profile")
	profile.Use(middleware.AuthRequired())
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.GET("/orders", profileHandler.Orders)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired(p.Facade))
	admin.GET("/orders", adminHandler.List)
	admin.GET("/stats", adminHandler.Stats)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateStatus)
	admin.GET("/live", liveHandler.Orders)
}

func healthHandler(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := health.HealthCheck(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
