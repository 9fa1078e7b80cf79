// Package testentry starts the whole application inside a test.
package testentry

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/statismics/backend/internal/app"
	"github.com/statismics/backend/internal/app/appcontext"
)

// New builds and starts the application with opts added, without a log file,
// Redis or Sentry. It is stopped when the test finishes.
func New(t *testing.T, opts ...fx.Option) *fxtest.App {
	t.Setenv("STATISMICS_LOG_FILE_PATH", "")
	t.Setenv("STATISMICS_REDIS_URL", "")
	t.Setenv("STATISMICS_SENTRY_DSN", "")
	t.Setenv("STATISMICS_TRACING_ENABLED", "false")

	// for testing, logger is too annoying. therefore, we use a NopLogger here
	opts = append([]fx.Option{fx.NopLogger}, opts...)
	opts = append(opts, fx.Invoke(func() {
		log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))
	}))

	a := fxtest.New(t, app.Options(appcontext.Declare(appcontext.EnvCLI), opts...)...)
	a.RequireStart()
	t.Cleanup(a.RequireStop)
	return a
}

// Populate starts the application and fills targets from it.
func Populate(t *testing.T, targets ...any) {
	New(t, fx.Populate(targets...))
}
