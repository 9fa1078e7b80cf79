package controller

import (
	"go.uber.org/fx"

	controllermeta "github.com/statismics/backend/internal/controller/meta"
	controllerv1 "github.com/statismics/backend/internal/controller/v1"
	controllerweb "github.com/statismics/backend/internal/controller/web"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (v1)
		controllerv1.Module(),

		// Controllers (meta)
		controllermeta.Module(),

		// Page
		controllerweb.Module(),
	)
}
