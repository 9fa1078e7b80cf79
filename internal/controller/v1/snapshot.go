package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/pkg/cachectrl"
	"github.com/statismics/backend/internal/server/svr"
	"github.com/statismics/backend/internal/store"
)

type Snapshot struct {
	fx.In

	Store *store.Store
}

func RegisterSnapshot(v1 *svr.V1, c Snapshot) {
	v1.Get("/snapshot", c.Current)
}

func (c *Snapshot) Current(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	return ctx.JSON(c.Store.Current())
}
