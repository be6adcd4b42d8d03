package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// CartPreview is the price breakdown shown before checkout. The delivery fee
// is informational and is not part of the stored order total.
type CartPreview struct {
	Items       []model.LineItem
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
	Currency    string
}

// CartUseCase prices selections without storing anything.
type CartUseCase struct {
	menu        model.Menu
	deliveryFee decimal.Decimal
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(menu model.Menu, deliveryFee decimal.Decimal) *CartUseCase {
	return &CartUseCase{menu: menu, deliveryFee: deliveryFee}
}

// Preview prices the dish, sides and drink of form.
func (u *CartUseCase) Preview(form model.OrderForm) (*CartPreview, error) {
	form = trimForm(form)
	items, subtotal, err := priceSelection(u.menu, form.Dish, form.Sides, form.Drink)
	if err != nil {
		return nil, err
	}
	return &CartPreview{
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: u.deliveryFee,
		Total:       subtotal.Add(u.deliveryFee),
		Currency:    model.Currency,
	}, nil
}

// Menu returns the catalog.
func (u *CartUseCase) Menu() model.Menu {
	return u.menu
}

// DefaultForm is the empty order form, prefilled with contact details when
// a profile is known.
func DefaultForm(profile *model.Profile) model.OrderForm {
	form := model.OrderForm{Dish: model.DefaultDish, Drink: model.DefaultDrink}
	if profile != nil {
		form.Name = strings.TrimSpace(profile.DisplayName)
		form.Phone = strings.TrimSpace(profile.PhoneNumber)
		form.Address = strings.TrimSpace(profile.Address)
	}
	return form
}
