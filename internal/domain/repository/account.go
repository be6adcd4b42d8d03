package repository

import (
	"context"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// AccountRepository stores locally registered credentials.
type AccountRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByUID(ctx context.Context, uid string) (*model.Account, error)
}
