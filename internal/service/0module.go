package service

import (
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/store"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		store.New,
		NewCharts,
		NewLookup,
		NewHealth,
	))
}
