package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/adapter/identitytoolkit"
	"github.com/polkiloo/eatery/internal/app"
	"github.com/polkiloo/eatery/internal/config"
	"github.com/polkiloo/eatery/internal/logger"
	"github.com/polkiloo/eatery/internal/metrics"
	"github.com/polkiloo/eatery/internal/pkg/auth"
	"github.com/polkiloo/eatery/internal/qrcode"
	"github.com/polkiloo/eatery/internal/server/http/router"
	"github.com/polkiloo/eatery/internal/storage/postgres"
	"github.com/polkiloo/eatery/internal/usecase"
	"github.com/polkiloo/eatery/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		identitytoolkit.Module,
		usecase.Module,
		worker.Module,
		qrcode.Module,
		fx.Provide(
			func(m *metrics.Metrics) usecase.OrderRecorder { return m },
			func(s *postgres.Storage) router.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
