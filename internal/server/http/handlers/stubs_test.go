package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/usecase"
	"github.com/polkiloo/eatery/internal/worker"
)

const adminEmail = "chef@eatery.test"

// facadeStub implements RestaurantFacade with overridable behaviour.
type facadeStub struct {
	signUpFn  func(context.Context, string, string) (*usecase.SignInResult, error)
	signInFn  func(context.Context, string, string, string) (*usecase.SignInResult, error)
	signOutFn func(context.Context, string) error
	submitFn  func(context.Context, *model.Identity, model.OrderForm) (*model.Receipt, error)
	orderFn   func(context.Context, *model.Identity, string) (*model.Order, error)
	formFn    func(context.Context, *model.Identity) (model.OrderForm, error)
	previewFn func(model.OrderForm) (*usecase.CartPreview, error)
	listFn    func(context.Context, *model.Identity, usecase.OrderFilter) (*usecase.OrderListing, error)
	statsFn   func(context.Context, *model.Identity) (model.OrderCounts, error)
	updateFn  func(context.Context, *model.Identity, string, model.OrderStatus) (*model.StatusUpdate, error)
	profileFn func(context.Context, *model.Identity) (*model.Profile, error)
	updProfFn func(context.Context, *model.Identity, model.ProfileUpdate) (*model.Profile, error)
	historyFn func(context.Context, *model.Identity) ([]model.Order, error)
	signedOut []string
}

func result(email, redirect string) *usecase.SignInResult {
	if email == adminEmail {
		redirect = "/admin"
	}
	return &usecase.SignInResult{
		Identity: &model.Identity{UID: "uid-1", Email: email},
		Token:    "token-1",
		Admin:    email == adminEmail,
		Redirect: redirect,
	}
}

func (s *facadeStub) SignUp(ctx context.Context, email, password string) (*usecase.SignInResult, error) {
	if s.signUpFn != nil {
		return s.signUpFn(ctx, email, password)
	}
	return result(email, "/"), nil
}

func (s *facadeStub) SignIn(ctx context.Context, email, password, callback string) (*usecase.SignInResult, error) {
	if s.signInFn != nil {
		return s.signInFn(ctx, email, password, callback)
	}
	return result(email, usecase.SafeCallback(callback)), nil
}

func (s *facadeStub) SignOut(ctx context.Context, token string) error {
	s.signedOut = append(s.signedOut, token)
	if s.signOutFn != nil {
		return s.signOutFn(ctx, token)
	}
	return nil
}

func (s *facadeStub) IsAdmin(identity *model.Identity) bool {
	return identity != nil && identity.Email == adminEmail
}

func (s *facadeStub) SubmitOrder(ctx context.Context, customer *model.Identity, form model.OrderForm) (*model.Receipt, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, customer, form)
	}
	order := sampleOrder()
	order.CustomerName = form.Name
	return &model.Receipt{Order: &order, Next: usecase.NextForm(form, customer != nil)}, nil
}

func (s *facadeStub) Order(ctx context.Context, viewer *model.Identity, id string) (*model.Order, error) {
	if s.orderFn != nil {
		return s.orderFn(ctx, viewer, id)
	}
	order := sampleOrder()
	order.ID = id
	return &order, nil
}

func (s *facadeStub) OrderForm(ctx context.Context, viewer *model.Identity) (model.OrderForm, error) {
	if s.formFn != nil {
		return s.formFn(ctx, viewer)
	}
	return usecase.DefaultForm(nil), nil
}

func (s *facadeStub) Menu() model.Menu {
	return model.DefaultMenu()
}

func (s *facadeStub) PreviewCart(form model.OrderForm) (*usecase.CartPreview, error) {
	if s.previewFn != nil {
		return s.previewFn(form)
	}
	return usecase.NewCartUseCase(model.DefaultMenu(), decimal.RequireFromString("3.99")).Preview(form)
}

func (s *facadeStub) ListOrders(ctx context.Context, viewer *model.Identity, filter usecase.OrderFilter) (*usecase.OrderListing, error) {
	if s.listFn != nil {
		return s.listFn(ctx, viewer, filter)
	}
	listing := usecase.NewOrderListing([]model.Order{sampleOrder()}, filter)
	return &listing, nil
}

func (s *facadeStub) OrderStats(ctx context.Context, viewer *model.Identity) (model.OrderCounts, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx, viewer)
	}
	return model.OrderCounts{Total: 1, Pending: 1}, nil
}

func (s *facadeStub) UpdateOrderStatus(ctx context.Context, viewer *model.Identity, id string, status model.OrderStatus) (*model.StatusUpdate, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, viewer, id, status)
	}
	return &model.StatusUpdate{OrderID: id, Previous: model.OrderStatusPending, Current: status, Durable: true, UpdatedAt: sampleTime}, nil
}

func (s *facadeStub) Profile(ctx context.Context, owner *model.Identity) (*model.Profile, error) {
	if s.profileFn != nil {
		return s.profileFn(ctx, owner)
	}
	return &model.Profile{UID: owner.UID, Email: owner.Email, CreatedAt: sampleTime}, nil
}

func (s *facadeStub) UpdateProfile(ctx context.Context, owner *model.Identity, update model.ProfileUpdate) (*model.Profile, error) {
	if s.updProfFn != nil {
		return s.updProfFn(ctx, owner, update)
	}
	profile := &model.Profile{UID: owner.UID, Email: owner.Email, CreatedAt: sampleTime}
	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
	}
	return profile, nil
}

func (s *facadeStub) ProfileOrders(ctx context.Context, owner *model.Identity) ([]model.Order, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, owner)
	}
	return []model.Order{sampleOrder()}, nil
}

// liveFeedStub hands out subscriptions from a real publisher so tests can
// drive snapshots through Notify.
type liveFeedStub struct {
	publisher    *worker.SnapshotPublisher
	subscribeErr error
}

func (l *liveFeedStub) Subscribe(filter usecase.OrderFilter) (*worker.Subscription, error) {
	if l.subscribeErr != nil {
		return nil, l.subscribeErr
	}
	return l.publisher.Subscribe(filter)
}

func (l *liveFeedStub) Unsubscribe(sub *worker.Subscription) {
	l.publisher.Unsubscribe(sub)
}

type qrStub struct {
	err error
}

func (q qrStub) OrderConfirmation(orderID string) ([]byte, error) {
	if q.err != nil {
		return nil, q.err
	}
	return []byte("png:" + orderID), nil
}

var (
	_ RestaurantFacade = (*facadeStub)(nil)
	_ LiveFeed         = (*liveFeedStub)(nil)
	_ QREncoder        = qrStub{}
)

var sampleTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleOrder() model.Order {
	return model.Order{
		ID:           "7b1d2f0e-9c53-4a8e-a3c1-5c6f1b2e4d10",
		CustomerName: "Ali",
		Phone:        "0123",
		Address:      "1 Jalan",
		Items:        []model.LineItem{{Name: "Kabsa", Price: decimal.NewFromInt(100), Quantity: 1}},
		Total:        decimal.NewFromInt(100),
		Status:       model.OrderStatusPending,
		Date:         sampleTime,
		Day:          "2024-05-01",
	}
}

type orderSourceStub struct {
	orders []model.Order
}

func (s orderSourceStub) ListAll(context.Context) ([]model.Order, error) {
	return s.orders, nil
}

type observerStub struct{}

func (observerStub) SubscribersChanged(int) {}
func (observerStub) SnapshotPublished()     {}
