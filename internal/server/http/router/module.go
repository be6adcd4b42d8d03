package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eatery/internal/qrcode"
	"github.com/polkiloo/eatery/internal/server/http/handlers"
	"github.com/polkiloo/eatery/internal/server/http/middleware"
	"github.com/polkiloo/eatery/internal/usecase"
	"github.com/polkiloo/eatery/internal/worker"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(
	Setup,
	func(g *usecase.RouteGuard) middleware.PageGuard { return g },
	func(p *worker.SnapshotPublisher) handlers.LiveFeed { return p },
	func(e *qrcode.Encoder) handlers.QREncoder { return e },
)
