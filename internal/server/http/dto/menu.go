package dto

import "github.com/shopspring/decimal"

type MenuItem struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type MenuResponse struct {
	Currency string     `json:"currency"`
	Mains    []MenuItem `json:"mains"`
	Sides    []MenuItem `json:"sides"`
	Drinks   []MenuItem `json:"drinks"`
}

// CartPreviewResponse prices a selection before checkout.
type CartPreviewResponse struct {
	Items       []LineItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
}
