package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/app/appcontext"
	"github.com/statismics/backend/internal/controller"
	"github.com/statismics/backend/internal/fetcher"
	"github.com/statismics/backend/internal/infra"
	"github.com/statismics/backend/internal/pkg/logger"
	"github.com/statismics/backend/internal/server"
	"github.com/statismics/backend/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	opts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// GitHub access
		fetcher.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(infra.SentryInit),
	}

	// Hooks are stopped in reverse order: anything appended here, the
	// listener in particular, outlives the event streams of the controllers.
	opts = append(opts, additionalOpts...)

	return append(opts,
		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(15*time.Second),
		// in-flight lookups are cancelled on stop; this only bounds a stuck shutdown
		fx.StopTimeout(time.Minute),
	)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
