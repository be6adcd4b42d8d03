package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/domain/repository"
)

// ChangeNotifier is told whenever the stored set of orders changed.
type ChangeNotifier interface {
	Notify()
}

// OrderRecorder observes order events for metrics.
type OrderRecorder interface {
	OrderSubmitted(total decimal.Decimal)
	StatusChanged(from, to model.OrderStatus)
}

// OrderUseCase encapsulates order submission and lifecycle logic.
type OrderUseCase struct {
	orders      repository.OrderRepository
	access      *AccessPolicy
	menu        model.Menu
	transitions model.TransitionTable
	notifier    ChangeNotifier
	recorder    OrderRecorder
	newID       func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	access *AccessPolicy,
	menu model.Menu,
	transitions model.TransitionTable,
	notifier ChangeNotifier,
	recorder OrderRecorder,
) *OrderUseCase {
	return &OrderUseCase{
		orders:      orders,
		access:      access,
		menu:        menu,
		transitions: transitions,
		notifier:    notifier,
		recorder:    recorder,
		newID:       uuid.NewString,
	}
}

// Submit validates and prices form and stores it as a pending order.
// customer is nil for anonymous orders.
func (u *OrderUseCase) Submit(ctx context.Context, customer *model.Identity, form model.OrderForm) (*model.Receipt, error) {
	form = trimForm(form)
	if err := validate.Struct(form); err != nil {
		return nil, validationError(err)
	}

	items, total, err := priceSelection(u.menu, form.Dish, form.Sides, form.Drink)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:           u.newID(),
		CustomerName: form.Name,
		Phone:        form.Phone,
		Address:      form.Address,
		Notes:        form.Notes,
		Items:        items,
		Total:        total,
		Status:       model.OrderStatusPending,
	}
	if customer != nil {
		uid := customer.UID
		order.UserID = &uid
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, domainErrors.Persistence("create order", err)
	}

	u.notifier.Notify()
	u.recorder.OrderSubmitted(order.Total)

	return &model.Receipt{Order: order, Next: NextForm(form, customer != nil)}, nil
}

// NextForm is the form shown after a successful submission. Delivery
// details survive only for signed-in customers.
func NextForm(submitted model.OrderForm, keepContact bool) model.OrderForm {
	next := model.OrderForm{Dish: model.DefaultDish, Drink: model.DefaultDrink}
	if keepContact {
		next.Name = submitted.Name
		next.Phone = submitted.Phone
		next.Address = submitted.Address
	}
	return next
}

// Get returns a single order. Customers can only see their own orders.
func (u *OrderUseCase) Get(ctx context.Context, viewer *model.Identity, id string) (*model.Order, error) {
	if viewer == nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, domainErrors.Persistence("load order", err)
	}
	if u.access.IsAdmin(viewer) {
		return order, nil
	}
	if order.UserID == nil || *order.UserID != viewer.UID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// List returns all orders matching filter for the administrator.
func (u *OrderUseCase) List(ctx context.Context, viewer *model.Identity, filter OrderFilter) (*OrderListing, error) {
	if err := u.access.requireAdmin(viewer); err != nil {
		return nil, err
	}
	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}
	all, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, domainErrors.Persistence("list orders", err)
	}
	listing := NewOrderListing(all, filter)
	return &listing, nil
}

// Stats returns dashboard counters over all orders.
func (u *OrderUseCase) Stats(ctx context.Context, viewer *model.Identity) (model.OrderCounts, error) {
	if err := u.access.requireAdmin(viewer); err != nil {
		return model.OrderCounts{}, err
	}
	all, err := u.orders.ListAll(ctx)
	if err != nil {
		return model.OrderCounts{}, domainErrors.Persistence("list orders", err)
	}
	return CountOrders(all), nil
}

// UpdateStatus moves an order to status. When the write fails the returned
// update has Durable set to false together with the error, so callers can
// tell the operator the change was not saved.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, viewer *model.Identity, id string, status model.OrderStatus) (*model.StatusUpdate, error) {
	if err := u.access.requireAdmin(viewer); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	check := func(current model.OrderStatus) error {
		if !u.transitions.Allows(current, status) {
			return fmt.Errorf("%w: %s to %s", domainErrors.ErrTransitionDenied, current, status)
		}
		return nil
	}

	previous, updatedAt, err := u.orders.UpdateStatus(ctx, id, status, check)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) || errors.Is(err, domainErrors.ErrTransitionDenied) {
			return nil, err
		}
		return &model.StatusUpdate{OrderID: id, Current: status}, domainErrors.Persistence("update order status", err)
	}

	u.notifier.Notify()
	u.recorder.StatusChanged(previous, status)

	return &model.StatusUpdate{
		OrderID:   id,
		Previous:  previous,
		Current:   status,
		Durable:   true,
		UpdatedAt: updatedAt,
	}, nil
}

// Menu returns the catalog orders are priced against.
func (u *OrderUseCase) Menu() model.Menu {
	return u.menu
}

func trimForm(form model.OrderForm) model.OrderForm {
	form.Dish = strings.TrimSpace(form.Dish)
	form.Drink = strings.TrimSpace(form.Drink)
	form.Notes = strings.TrimSpace(form.Notes)
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Address = strings.TrimSpace(form.Address)
	sides := make([]string, 0, len(form.Sides))
	for _, side := range form.Sides {
		if side = strings.TrimSpace(side); side != "" {
			sides = append(sides, side)
		}
	}
	form.Sides = sides
	return form
}
