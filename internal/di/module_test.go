package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/app"
	"github.com/polkiloo/eatery/internal/config"
	"github.com/polkiloo/eatery/internal/domain/repository"
	"github.com/polkiloo/eatery/internal/server/http/router"
	"github.com/polkiloo/eatery/internal/storage/postgres"
	"github.com/polkiloo/eatery/internal/test"
	"github.com/polkiloo/eatery/internal/usecase"
)

type healthStub struct{}

func (healthStub) HealthCheck(context.Context) error { return nil }

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		AdminEmail:       "chef@eatery.test",
		JWTSecret:        "secret",
		SessionTTL:       time.Hour,
		IdentityProvider: config.IdentityProviderLocal,
		OrderDayLocation: time.UTC,
		StatusPolicy:     config.StatusPolicyPermissive,
		DeliveryFee:      decimal.NewFromInt(3),
		LoginRateLimit:   1,
		LoginRateBurst:   1,
		SnapshotWorkers:  1,
		ShutdownTimeout:  time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade   *app.RestaurantFacade
		provider usecase.IdentityProvider
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(router.HealthChecker(healthStub{})),
			fx.Replace(repository.AccountRepository(test.NewAccountRepositoryStub())),
			fx.Replace(repository.OrderRepository(&test.OrderRepositoryStub{})),
			fx.Replace(repository.ProfileRepository(test.NewProfileRepositoryStub())),
		),
		fx.Populate(&facade, &provider),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected restaurant facade instance")
	}
	if _, ok := provider.(*usecase.AuthUseCase); !ok {
		t.Fatalf("expected local identity provider, got %T", provider)
	}
}
