package dto

import "time"

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusUpdateResponse reports the outcome of a status change. Durable is
// false when the change was not saved and is shown locally only.
type StatusUpdateResponse struct {
	OrderID   string     `json:"orderId"`
	Previous  string     `json:"previous,omitempty"`
	Status    string     `json:"status"`
	Durable   bool       `json:"durable"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Message   string     `json:"message,omitempty"`
}

type CountsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Delivered  int `json:"delivered"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Counts CountsResponse  `json:"counts"`
}

// SnapshotMessage is pushed over the live admin feed.
type SnapshotMessage struct {
	Type   string          `json:"type"`
	Orders []OrderResponse `json:"orders"`
	Counts CountsResponse  `json:"counts"`
	At     time.Time       `json:"at"`
}
