package handlers

import (
	"context"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/usecase"
	"github.com/polkiloo/eatery/internal/worker"
)

// SessionFacade describes authentication capabilities required by handlers.
type SessionFacade interface {
	SignUp(ctx context.Context, email, password string) (*usecase.SignInResult, error)
	SignIn(ctx context.Context, email, password, callback string) (*usecase.SignInResult, error)
	SignOut(ctx context.Context, token string) error
	IsAdmin(identity *model.Identity) bool
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, customer *model.Identity, form model.OrderForm) (*model.Receipt, error)
	Order(ctx context.Context, viewer *model.Identity, id string) (*model.Order, error)
	OrderForm(ctx context.Context, viewer *model.Identity) (model.OrderForm, error)
}

// CatalogFacade serves the menu and prices carts.
type CatalogFacade interface {
	Menu() model.Menu
	PreviewCart(form model.OrderForm) (*usecase.CartPreview, error)
}

// AdminFacade provides the administrator's order operations.
type AdminFacade interface {
	ListOrders(ctx context.Context, viewer *model.Identity, filter usecase.OrderFilter) (*usecase.OrderListing, error)
	OrderStats(ctx context.Context, viewer *model.Identity) (model.OrderCounts, error)
	UpdateOrderStatus(ctx context.Context, viewer *model.Identity, id string, status model.OrderStatus) (*model.StatusUpdate, error)
}

// ProfileFacade manages the caller's own profile.
type ProfileFacade interface {
	Profile(ctx context.Context, owner *model.Identity) (*model.Profile, error)
	UpdateProfile(ctx context.Context, owner *model.Identity, update model.ProfileUpdate) (*model.Profile, error)
	ProfileOrders(ctx context.Context, owner *model.Identity) ([]model.Order, error)
}

// LiveFeed hands out live order subscriptions.
type LiveFeed interface {
	Subscribe(filter usecase.OrderFilter) (*worker.Subscription, error)
	Unsubscribe(sub *worker.Subscription)
}

// QREncoder renders order confirmation codes.
type QREncoder interface {
	OrderConfirmation(orderID string) ([]byte, error)
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	SessionFacade
	OrderFacade
	CatalogFacade
	AdminFacade
	ProfileFacade
}
