package repository

import (
	"context"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// ProfileRepository stores customer profiles keyed by identity uid.
type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*model.Profile, error)
	// Ensure creates the profile on first access and returns the stored one.
	Ensure(ctx context.Context, identity model.Identity) (*model.Profile, error)
	Update(ctx context.Context, uid string, update model.ProfileUpdate) (*model.Profile, error)
	TouchLogin(ctx context.Context, identity model.Identity) error
}
