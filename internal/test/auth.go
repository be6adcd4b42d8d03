package test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	if len(password) < pkgAuth.MinPasswordLength {
		return "", pkgAuth.ErrWeakPassword
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// StrategyStub issues tokens of the form "token:<uid>:<email>".
type StrategyStub struct {
	IssueFn func(model.Identity) (string, error)
	ParseFn func(string) (*pkgAuth.TokenClaims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(identity model.Identity) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	return "token:" + identity.UID + ":" + identity.Email, nil
}

// ParseToken reverses IssueToken. The token itself is used as the id.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.TokenClaims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != "token" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.TokenClaims{
		Identity:  model.Identity{UID: parts[1], Email: parts[2]},
		ID:        token,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// RevocationListStub keeps revoked ids in memory.
type RevocationListStub struct {
	mu    sync.Mutex
	Items map[string]time.Time
	Err   error
}

func (r *RevocationListStub) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Items == nil {
		r.Items = make(map[string]time.Time)
	}
	r.Items[tokenID] = until
	return nil
}

func (r *RevocationListStub) Revoked(_ context.Context, tokenID string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Items[tokenID]
	return ok, nil
}

// IdentityProviderStub lets tests script sign-up, sign-in and verification.
type IdentityProviderStub struct {
	SignUpFn  func(context.Context, string, string) (*model.Identity, string, error)
	SignInFn  func(context.Context, string, string) (*model.Identity, string, error)
	VerifyFn  func(context.Context, string) (*model.Identity, error)
	SignOutFn func(context.Context, string) error

	SignedOut []string
}

func (p *IdentityProviderStub) SignUp(ctx context.Context, email, password string) (*model.Identity, string, error) {
	if p.SignUpFn != nil {
		return p.SignUpFn(ctx, email, password)
	}
	return &model.Identity{UID: "uid-" + email, Email: email}, "token", nil
}

func (p *IdentityProviderStub) SignIn(ctx context.Context, email, password string) (*model.Identity, string, error) {
	if p.SignInFn != nil {
		return p.SignInFn(ctx, email, password)
	}
	return &model.Identity{UID: "uid-" + email, Email: email}, "token", nil
}

func (p *IdentityProviderStub) Verify(ctx context.Context, token string) (*model.Identity, error) {
	if p.VerifyFn != nil {
		return p.VerifyFn(ctx, token)
	}
	if token == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	return &model.Identity{UID: "u1", Email: "user@eatery.test"}, nil
}

func (p *IdentityProviderStub) SignOut(ctx context.Context, token string) error {
	p.SignedOut = append(p.SignedOut, token)
	if p.SignOutFn != nil {
		return p.SignOutFn(ctx, token)
	}
	return nil
}

// SessionResolverStub maps cookie values to identities.
type SessionResolverStub struct {
	Identities map[string]*model.Identity
}

// Resolve returns an anonymous session for unknown tokens.
func (s SessionResolverStub) Resolve(_ context.Context, token string) model.Session {
	if identity, ok := s.Identities[token]; ok {
		return model.Session{Token: token, Identity: identity}
	}
	return model.Session{}
}

// ErrStub is a generic failure for error propagation tests.
var ErrStub = errors.New("stub failure")

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.RevocationList = (*RevocationListStub)(nil)
