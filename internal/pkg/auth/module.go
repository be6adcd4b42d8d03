package auth

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newRevocationList),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.SessionTTL})
}

type revocationParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

func newRevocationList(p revocationParams) (RevocationList, error) {
	if p.Config.RedisURL == "" {
		return NewMemoryRevocationList(), nil
	}
	list, err := NewRedisRevocationList(p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error { return list.Close() },
	})
	return list, nil
}
