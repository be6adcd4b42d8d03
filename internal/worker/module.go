package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/config"
	"github.com/polkiloo/eatery/internal/domain/repository"
	"github.com/polkiloo/eatery/internal/metrics"
	"github.com/polkiloo/eatery/internal/usecase"
)

// Module provides the live snapshot publisher and binds it as the order
// change notifier.
var Module = fx.Options(
	fx.Provide(
		newSnapshotPublisher,
		func(p *SnapshotPublisher) usecase.ChangeNotifier { return p },
	),
)

type publisherParams struct {
	fx.In

	Orders  repository.OrderRepository
	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func newSnapshotPublisher(p publisherParams) *SnapshotPublisher {
	return NewSnapshotPublisher(p.Orders, p.Config.SnapshotWorkers, p.Metrics, p.Logger)
}
