package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes where an order is in its delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further work happens on an order in status s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// LineItem is a single priced entry of an order.
type LineItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a submitted food order.
type Order struct {
	ID           string
	CustomerName string
	Phone        string
	Address      string
	Notes        string
	Items        []LineItem
	Total        decimal.Decimal
	Status       OrderStatus
	Date         time.Time
	// Day is the calendar day (YYYY-MM-DD) of Date in the restaurant timezone.
	Day       string
	UserID    *string
	UpdatedAt *time.Time
}

// StatusUpdate is the outcome of a status change request.
type StatusUpdate struct {
	OrderID   string
	Previous  OrderStatus
	Current   OrderStatus
	Durable   bool
	UpdatedAt time.Time
}

// OrderCounts summarizes orders for the admin dashboard.
type OrderCounts struct {
	Total      int
	Pending    int
	InProgress int
	Delivered  int
}
