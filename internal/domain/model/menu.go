package model

import "github.com/shopspring/decimal"

// Currency used for all menu prices.
const Currency = "MYR"

const (
	DefaultDish  = "kabsa"
	DefaultDrink = "water"
)

// MenuItem is an orderable dish, side or drink.
type MenuItem struct {
	Key   string
	Name  string
	Price decimal.Decimal
}

// Menu is the fixed restaurant catalog.
type Menu struct {
	Mains  []MenuItem
	Sides  []MenuItem
	Drinks []MenuItem
}

// DefaultMenu returns the catalog served by the restaurant.
func DefaultMenu() Menu {
	return Menu{
		Mains: []MenuItem{
			{Key: "kabsa", Name: "Kabsa", Price: decimal.NewFromInt(100)},
			{Key: "pastitsio", Name: "Pastitsio", Price: decimal.NewFromInt(120)},
		},
		Sides: []MenuItem{
			{Key: "garlic", Name: "Garlic Sauce", Price: decimal.NewFromInt(3)},
			{Key: "tomato", Name: "Tomato Sauce", Price: decimal.NewFromInt(3)},
			{Key: "salad", Name: "Salad", Price: decimal.NewFromInt(5)},
		},
		Drinks: []MenuItem{
			{Key: "water", Name: "Water", Price: decimal.RequireFromString("1.5")},
			{Key: "coke", Name: "Coca Cola", Price: decimal.NewFromInt(3)},
			{Key: "apple", Name: "Apple Juice", Price: decimal.NewFromInt(3)},
		},
	}
}

func (m Menu) Main(key string) (MenuItem, bool)  { return find(m.Mains, key) }
func (m Menu) Side(key string) (MenuItem, bool)  { return find(m.Sides, key) }
func (m Menu) Drink(key string) (MenuItem, bool) { return find(m.Drinks, key) }

func find(items []MenuItem, key string) (MenuItem, bool) {
	for _, item := range items {
		if item.Key == key {
			return item, true
		}
	}
	return MenuItem{}, false
}

// OrderForm is what a customer fills in on the menu page.
type OrderForm struct {
	Dish    string
	Sides   []string
	Drink   string
	Notes   string
	Name    string `validate:"required"`
	Phone   string `validate:"required"`
	Address string `validate:"required"`
}

// Receipt is returned after a successful submission.
type Receipt struct {
	Order *Order
	// Next is the form to show after submission.
	Next OrderForm
}
