package usecase

import (
	"context"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// IdentityProvider authenticates customers and verifies their session tokens.
// Sign-in failures are reported as *errors.AuthError.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*model.Identity, string, error)
	SignIn(ctx context.Context, email, password string) (*model.Identity, string, error)
	Verify(ctx context.Context, token string) (*model.Identity, error)
	SignOut(ctx context.Context, token string) error
}
