package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/domain/repository"
)

const (
	homePath  = "/"
	adminPath = "/admin"
)

// SignInResult is what the login endpoint needs to set the cookie and
// navigate the browser.
type SignInResult struct {
	Identity *model.Identity
	Token    string
	Admin    bool
	Redirect string
}

// SessionUseCase ties the identity provider to profiles and the admin policy.
type SessionUseCase struct {
	provider IdentityProvider
	profiles repository.ProfileRepository
	access   *AccessPolicy
	logger   *slog.Logger
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(provider IdentityProvider, profiles repository.ProfileRepository, access *AccessPolicy, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{provider: provider, profiles: profiles, access: access, logger: logger}
}

// SignUp registers a customer and signs them in.
func (u *SessionUseCase) SignUp(ctx context.Context, email, password string) (*SignInResult, error) {
	identity, token, err := u.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if _, err := u.profiles.Ensure(ctx, *identity); err != nil {
		u.logger.Warn("failed to create profile", slog.String("uid", identity.UID), slog.Any("error", err))
	}
	return u.result(identity, token, ""), nil
}

// SignIn authenticates a customer. callback is the page that sent them to
// the login form.
func (u *SessionUseCase) SignIn(ctx context.Context, email, password, callback string) (*SignInResult, error) {
	identity, token, err := u.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := u.profiles.TouchLogin(ctx, *identity); err != nil {
		u.logger.Warn("failed to record login", slog.String("uid", identity.UID), slog.Any("error", err))
	}
	return u.result(identity, token, callback), nil
}

// Resolve builds the request session from a cookie value. Invalid or
// revoked tokens yield an anonymous session.
func (u *SessionUseCase) Resolve(ctx context.Context, token string) model.Session {
	if token == "" {
		return model.Session{}
	}
	identity, err := u.provider.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrUnauthenticated) {
			u.logger.Error("session verification failed", slog.Any("error", err))
		}
		return model.Session{}
	}
	return model.Session{Token: token, Identity: identity}
}

// SignOut ends the session behind token.
func (u *SessionUseCase) SignOut(ctx context.Context, token string) error {
	return u.provider.SignOut(ctx, token)
}

// IsAdmin reports whether identity is the administrator.
func (u *SessionUseCase) IsAdmin(identity *model.Identity) bool {
	return u.access.IsAdmin(identity)
}

func (u *SessionUseCase) result(identity *model.Identity, token, callback string) *SignInResult {
	admin := u.access.IsAdmin(identity)
	redirect := SafeCallback(callback)
	if admin {
		redirect = adminPath
	}
	return &SignInResult{Identity: identity, Token: token, Admin: admin, Redirect: redirect}
}

// SafeCallback returns callback when it is a local path and "/" otherwise.
func SafeCallback(callback string) string {
	callback = strings.TrimSpace(callback)
	if !strings.HasPrefix(callback, "/") || strings.HasPrefix(callback, "//") || strings.Contains(callback, `\`) {
		return homePath
	}
	return callback
}
