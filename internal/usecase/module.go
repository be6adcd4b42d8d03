package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/config"
	"github.com/polkiloo/eatery/internal/domain/model"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	model.DefaultMenu,
	newAccessPolicy,
	newTransitionTable,
	newCartUseCase,
	NewAuthUseCase,
	NewSessionUseCase,
	NewOrderUseCase,
	NewProfileUseCase,
	NewRouteGuard,
)

func newAccessPolicy(cfg *config.Config) *AccessPolicy {
	return NewAccessPolicy(cfg.AdminEmail)
}

func newTransitionTable(cfg *config.Config) model.TransitionTable {
	return model.NewTransitionTable(model.TransitionPolicy(cfg.StatusPolicy))
}

func newCartUseCase(cfg *config.Config, menu model.Menu) *CartUseCase {
	return NewCartUseCase(menu, cfg.DeliveryFee)
}
