package usecase

import (
	"strings"
	"time"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
)

// StatusAll disables the status filter.
const StatusAll = "all"

const dayLayout = "2006-01-02"

// OrderFilter narrows the admin order list. Zero value matches everything.
type OrderFilter struct {
	Search string
	Status string
	// Day is a calendar day in YYYY-MM-DD form.
	Day string
}

// Normalize trims the filter and checks status and day.
func (f OrderFilter) Normalize() (OrderFilter, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Status = strings.TrimSpace(f.Status)
	f.Day = strings.TrimSpace(f.Day)

	if f.Status == "" {
		f.Status = StatusAll
	}
	if f.Status != StatusAll && !model.OrderStatus(f.Status).Valid() {
		return OrderFilter{}, domainErrors.ErrInvalidStatus
	}
	if f.Day != "" {
		if _, err := time.Parse(dayLayout, f.Day); err != nil {
			return OrderFilter{}, domainErrors.ErrInvalidDate
		}
	}
	return f, nil
}

// Matches reports whether order passes every criterion of f.
func (f OrderFilter) Matches(order model.Order) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(order.CustomerName), needle) &&
			!strings.Contains(strings.ToLower(order.ID), needle) &&
			!strings.Contains(strings.ToLower(order.Address), needle) {
			return false
		}
	}
	if f.Status != "" && f.Status != StatusAll && string(order.Status) != f.Status {
		return false
	}
	if f.Day != "" && order.Day != f.Day {
		return false
	}
	return true
}

// FilterOrders returns the orders matching f, keeping their relative order.
func FilterOrders(orders []model.Order, f OrderFilter) []model.Order {
	result := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if f.Matches(order) {
			result = append(result, order)
		}
	}
	return result
}

// CountOrders computes the dashboard counters.
func CountOrders(orders []model.Order) model.OrderCounts {
	counts := model.OrderCounts{Total: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case model.OrderStatusPending:
			counts.Pending++
		case model.OrderStatusPreparing, model.OrderStatusOutForDelivery:
			counts.InProgress++
		case model.OrderStatusDelivered:
			counts.Delivered++
		}
	}
	return counts
}

// OrderListing is a filtered order list together with counters over all orders.
type OrderListing struct {
	Orders []model.Order
	Counts model.OrderCounts
}

// NewOrderListing applies f to orders and counts the unfiltered set.
func NewOrderListing(orders []model.Order, f OrderFilter) OrderListing {
	return OrderListing{Orders: FilterOrders(orders, f), Counts: CountOrders(orders)}
}
