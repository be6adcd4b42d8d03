package repository

import (
	"context"
	"time"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// StatusCheck inspects the current status before it is overwritten.
// Returning an error aborts the update.
type StatusCheck func(current model.OrderStatus) error

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores order and assigns its server timestamps and calendar day.
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, uid string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, check StatusCheck) (model.OrderStatus, time.Time, error)
}
