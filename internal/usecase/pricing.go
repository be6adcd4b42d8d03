package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
)

// priceSelection turns a menu selection into order lines: the main dish,
// then the sides in selection order, then the drink. Repeated sides are
// counted once.
func priceSelection(menu model.Menu, dish string, sides []string, drink string) ([]model.LineItem, decimal.Decimal, error) {
	main, ok := menu.Main(dish)
	if !ok {
		return nil, decimal.Zero, fmt.Errorf("%w: dish %q", domainErrors.ErrUnknownMenuItem, dish)
	}
	beverage, ok := menu.Drink(drink)
	if !ok {
		return nil, decimal.Zero, fmt.Errorf("%w: drink %q", domainErrors.ErrUnknownMenuItem, drink)
	}

	items := make([]model.LineItem, 0, len(sides)+2)
	items = append(items, lineOf(main))

	seen := make(map[string]struct{}, len(sides))
	for _, key := range sides {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		side, ok := menu.Side(key)
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: side %q", domainErrors.ErrUnknownMenuItem, key)
		}
		items = append(items, lineOf(side))
	}
	items = append(items, lineOf(beverage))

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return items, total, nil
}

func lineOf(item model.MenuItem) model.LineItem {
	return model.LineItem{Name: item.Name, Price: item.Price, Quantity: 1}
}
