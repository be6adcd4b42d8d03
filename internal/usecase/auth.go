package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/domain/repository"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
)

// AuthUseCase is the local identity provider: accounts live in the
// database and sessions are signed tokens.
type AuthUseCase struct {
	accounts    repository.AccountRepository
	hasher      pkgAuth.PasswordHasher
	tokens      pkgAuth.Strategy
	revocations pkgAuth.RevocationList

	dummyOnce sync.Once
	dummyHash string
}

// unknownAccountPassword is hashed once and compared against when the email
// has no account, so both sign-in failures cost the same.
const unknownAccountPassword = "no-such-account"

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(accounts repository.AccountRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, revocations pkgAuth.RevocationList) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, hasher: hasher, tokens: strategy, revocations: revocations}
}

var _ IdentityProvider = (*AuthUseCase)(nil)

// SignUp creates an account and opens a session for it.
func (u *AuthUseCase) SignUp(ctx context.Context, email, password string) (*model.Identity, string, error) {
	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, "", &domainErrors.AuthError{Reason: err}
	}

	// ErrWeakPassword is returned as is: it is not a credentials mismatch.
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	account, err := u.accounts.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", &domainErrors.AuthError{Reason: err}
		}
		return nil, "", domainErrors.Persistence("create account", err)
	}

	return u.issue(account)
}

// SignIn checks credentials and opens a session.
func (u *AuthUseCase) SignIn(ctx context.Context, email, password string) (*model.Identity, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", &domainErrors.AuthError{Reason: domainErrors.ErrInvalidCredentials}
	}

	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			_ = u.hasher.Compare(u.unknownAccountHash(), password)
			return nil, "", &domainErrors.AuthError{Reason: err}
		}
		return nil, "", domainErrors.Persistence("load account", err)
	}

	if err := u.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, "", &domainErrors.AuthError{Reason: err}
	}

	return u.issue(account)
}

func (u *AuthUseCase) unknownAccountHash() string {
	u.dummyOnce.Do(func() {
		u.dummyHash, _ = u.hasher.Hash(unknownAccountPassword)
	})
	return u.dummyHash
}

// Verify returns the identity behind token unless the token is invalid,
// expired or revoked.
func (u *AuthUseCase) Verify(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	revoked, err := u.revocations.Revoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domainErrors.ErrUnauthenticated
	}
	identity := claims.Identity
	return &identity, nil
}

// SignOut revokes token until it would have expired anyway. Signing out
// with an invalid token is a no-op.
func (u *AuthUseCase) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return u.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt)
}

func (u *AuthUseCase) issue(account *model.Account) (*model.Identity, string, error) {
	identity := model.Identity{UID: account.UID, Email: account.Email}
	token, err := u.tokens.IssueToken(identity)
	if err != nil {
		return nil, "", err
	}
	return &identity, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
