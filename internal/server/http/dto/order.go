package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderForm is the order form as sent by and returned to the browser.
type OrderForm struct {
	Dish    string   `json:"dish"`
	Sides   []string `json:"sides"`
	Drink   string   `json:"drink"`
	Notes   string   `json:"notes"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
}

type LineItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type OrderResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Notes        string          `json:"notes,omitempty"`
	Items        []LineItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Date         time.Time       `json:"date"`
	Day          string          `json:"day"`
	UserID       *string         `json:"userId,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// ReceiptResponse confirms a submitted order.
type ReceiptResponse struct {
	Order   OrderResponse `json:"order"`
	Message string        `json:"message"`
	QRCode  string        `json:"qrCode"`
	Next    OrderForm     `json:"next"`
}
