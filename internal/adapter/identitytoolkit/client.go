// Package identitytoolkit signs customers in against a hosted
// email/password identity service speaking the Identity Toolkit REST API.
package identitytoolkit

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
)

// defaultTokenLifetime is used when the service omits expiresIn.
const defaultTokenLifetime = time.Hour

// TooManyRequestsError represents a rate limiting signal from the service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// ServiceError is an error payload returned by the service, e.g. EMAIL_EXISTS.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("identity toolkit: %d %s", e.Status, e.Message)
}

// Code is the message without the human readable suffix some codes carry.
func (e *ServiceError) Code() string {
	code, _, _ := strings.Cut(e.Message, " ")
	return code
}

// HTTPClient implements the identity provider over HTTP.
type HTTPClient struct {
	baseURL     *url.URL
	apiKey      string
	httpClient  *http.Client
	revocations pkgAuth.RevocationList
	logger      *slog.Logger
	now         func() time.Time
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialsResponse struct {
	IDToken string `json:"idToken"`
	Email   string `json:"email"`
	LocalID string `json:"localId"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	} `json:"users"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewHTTPClient creates an identity toolkit client with default timeout.
func NewHTTPClient(baseURL, apiKey string, revocations pkgAuth.RevocationList, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse identity toolkit url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("identity toolkit url must be absolute")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("identity toolkit api key is empty")
	}
	return &HTTPClient{
		baseURL:     parsed,
		apiKey:      apiKey,
		revocations: revocations,
		logger:      logger,
		now:         time.Now,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SignUp creates an account on the service.
func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*model.Identity, string, error) {
	var resp credentialsResponse
	err := c.call(ctx, "accounts:signUp", credentialsRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp)
	if err != nil {
		return nil, "", c.credentialsError(err)
	}
	return &model.Identity{UID: resp.LocalID, Email: strings.ToLower(resp.Email)}, resp.IDToken, nil
}

// SignIn exchanges email and password for an id token.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*model.Identity, string, error) {
	var resp credentialsResponse
	err := c.call(ctx, "accounts:signInWithPassword", credentialsRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp)
	if err != nil {
		return nil, "", c.credentialsError(err)
	}
	return &model.Identity{UID: resp.LocalID, Email: strings.ToLower(resp.Email)}, resp.IDToken, nil
}

// Verify resolves an id token to the account it was issued for.
func (c *HTTPClient) Verify(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	revoked, err := c.revocations.Revoked(ctx, tokenKey(token))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domainErrors.ErrUnauthenticated
	}

	var resp lookupResponse
	if err := c.call(ctx, "accounts:lookup", lookupRequest{IDToken: token}, &resp); err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Status == http.StatusBadRequest {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, domainErrors.ErrUnauthenticated
	}
	user := resp.Users[0]
	return &model.Identity{UID: user.LocalID, Email: strings.ToLower(user.Email)}, nil
}

// SignOut stops accepting token in this service. The service itself keeps
// the token valid until it expires.
func (c *HTTPClient) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return c.revocations.Revoke(ctx, tokenKey(token), c.now().Add(defaultTokenLifetime))
}

func (c *HTTPClient) credentialsError(err error) error {
	var se *ServiceError
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case "WEAK_PASSWORD":
		return pkgAuth.ErrWeakPassword
	case "EMAIL_EXISTS", "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED", "MISSING_PASSWORD":
		return &domainErrors.AuthError{Reason: se}
	default:
		return err
	}
}

func (c *HTTPClient) call(ctx context.Context, method string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, method)
	query := endpoint.Query()
	query.Set("key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.Unmarshal(raw, out)
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var payload errorResponse
		if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
			return &ServiceError{Status: resp.StatusCode, Message: payload.Error.Message}
		}
		return &ServiceError{Status: resp.StatusCode, Message: resp.Status}
	default:
		c.logger.Error("identity toolkit request failed", slog.String("method", method), slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return fmt.Errorf("identity toolkit error: %s", resp.Status)
	}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "itk:" + hex.EncodeToString(sum[:])
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
