package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/domain/repository"
)

// ProfileUseCase manages the signed-in customer's own profile.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
	orders   repository.OrderRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository, orders repository.OrderRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles, orders: orders}
}

// Get returns the profile of owner, creating an empty one on first access.
func (u *ProfileUseCase) Get(ctx context.Context, owner *model.Identity) (*model.Profile, error) {
	if owner == nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	profile, err := u.profiles.Ensure(ctx, *owner)
	if err != nil {
		return nil, domainErrors.Persistence("load profile", err)
	}
	return profile, nil
}

// Update applies the non-nil fields of update.
func (u *ProfileUseCase) Update(ctx context.Context, owner *model.Identity, update model.ProfileUpdate) (*model.Profile, error) {
	if owner == nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	update = trimUpdate(update)
	if err := validate.Struct(update); err != nil {
		return nil, validationError(err)
	}
	if _, err := u.profiles.Ensure(ctx, *owner); err != nil {
		return nil, domainErrors.Persistence("load profile", err)
	}
	profile, err := u.profiles.Update(ctx, owner.UID, update)
	if err != nil {
		return nil, domainErrors.Persistence("update profile", err)
	}
	return profile, nil
}

// Orders returns the owner's order history, newest first.
func (u *ProfileUseCase) Orders(ctx context.Context, owner *model.Identity) ([]model.Order, error) {
	if owner == nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	orders, err := u.orders.ListByUser(ctx, owner.UID)
	if err != nil {
		return nil, domainErrors.Persistence("list orders", err)
	}
	slices.SortStableFunc(orders, func(a, b model.Order) int {
		return b.Date.Compare(a.Date)
	})
	return orders, nil
}

// OrderForm returns the order form prefilled from the owner's profile.
// Anonymous callers and customers without a profile get the blank form.
func (u *ProfileUseCase) OrderForm(ctx context.Context, owner *model.Identity) (model.OrderForm, error) {
	if owner == nil {
		return DefaultForm(nil), nil
	}
	profile, err := u.profiles.Get(ctx, owner.UID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return DefaultForm(nil), nil
		}
		return DefaultForm(nil), domainErrors.Persistence("load profile", err)
	}
	return DefaultForm(profile), nil
}

func trimUpdate(update model.ProfileUpdate) model.ProfileUpdate {
	for _, field := range []**string{&update.DisplayName, &update.PhoneNumber, &update.Address, &update.PhotoURL} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}
	return update
}
