package web

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controllers.web", fx.Invoke(
		RegisterPage,
	))
}
