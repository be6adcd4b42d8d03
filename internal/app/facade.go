package app

import (
	"context"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/usecase"
)

// RestaurantFacade is the single entry point the HTTP layer talks to.
type RestaurantFacade struct {
	sessions *usecase.SessionUseCase
	orders   *usecase.OrderUseCase
	profiles *usecase.ProfileUseCase
	cart     *usecase.CartUseCase
}

func NewRestaurantFacade(sessions *usecase.SessionUseCase, orders *usecase.OrderUseCase, profiles *usecase.ProfileUseCase, cart *usecase.CartUseCase) *RestaurantFacade {
	return &RestaurantFacade{sessions: sessions, orders: orders, profiles: profiles, cart: cart}
}

func (f *RestaurantFacade) SignUp(ctx context.Context, email, password string) (*usecase.SignInResult, error) {
	return f.sessions.SignUp(ctx, email, password)
}

func (f *RestaurantFacade) SignIn(ctx context.Context, email, password, callback string) (*usecase.SignInResult, error) {
	return f.sessions.SignIn(ctx, email, password, callback)
}

func (f *RestaurantFacade) SignOut(ctx context.Context, token string) error {
	return f.sessions.SignOut(ctx, token)
}

func (f *RestaurantFacade) Resolve(ctx context.Context, token string) model.Session {
	return f.sessions.Resolve(ctx, token)
}

func (f *RestaurantFacade) IsAdmin(identity *model.Identity) bool {
	return f.sessions.IsAdmin(identity)
}

func (f *RestaurantFacade) SubmitOrder(ctx context.Context, customer *model.Identity, form model.OrderForm) (*model.Receipt, error) {
	return f.orders.Submit(ctx, customer, form)
}

func (f *RestaurantFacade) Order(ctx context.Context, viewer *model.Identity, id string) (*model.Order, error) {
	return f.orders.Get(ctx, viewer, id)
}

// OrderForm returns the checkout form prefilled from the viewer's profile.
func (f *RestaurantFacade) OrderForm(ctx context.Context, viewer *model.Identity) (model.OrderForm, error) {
	return f.profiles.OrderForm(ctx, viewer)
}

func (f *RestaurantFacade) Menu() model.Menu {
	return f.cart.Menu()
}

func (f *RestaurantFacade) PreviewCart(form model.OrderForm) (*usecase.CartPreview, error) {
	return f.cart.Preview(form)
}

func (f *RestaurantFacade) ListOrders(ctx context.Context, viewer *model.Identity, filter usecase.OrderFilter) (*usecase.OrderListing, error) {
	return f.orders.List(ctx, viewer, filter)
}

func (f *RestaurantFacade) OrderStats(ctx context.Context, viewer *model.Identity) (model.OrderCounts, error) {
	return f.orders.Stats(ctx, viewer)
}

func (f *RestaurantFacade) UpdateOrderStatus(ctx context.Context, viewer *model.Identity, id string, status model.OrderStatus) (*model.StatusUpdate, error) {
	return f.orders.UpdateStatus(ctx, viewer, id, status)
}

func (f *RestaurantFacade) Profile(ctx context.Context, owner *model.Identity) (*model.Profile, error) {
	return f.profiles.Get(ctx, owner)
}

func (f *RestaurantFacade) UpdateProfile(ctx context.Context, owner *model.Identity, update model.ProfileUpdate) (*model.Profile, error) {
	return f.profiles.Update(ctx, owner, update)
}

func (f *RestaurantFacade) ProfileOrders(ctx context.Context, owner *model.Identity) ([]model.Order, error) {
	return f.profiles.Orders(ctx, owner)
}
