package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/statismics/backend/internal/app"
	"github.com/statismics/backend/internal/app/appcontext"
)

// Start builds and starts the application for a one-off command. The
// returned stop function releases what the application holds.
func Start(ctx context.Context, module fx.Option) (stop func(), err error) {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := a.Start(ctx); err != nil {
		return nil, err
	}
	return func() {
		_ = a.Stop(context.Background())
	}, nil
}
