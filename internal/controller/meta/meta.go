package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/pkg/apierr"
	"github.com/statismics/backend/internal/pkg/bininfo"
	"github.com/statismics/backend/internal/server/svr"
	"github.com/statismics/backend/internal/service"
	"github.com/statismics/backend/internal/store"
)

type Meta struct {
	fx.In

	HealthService *service.Health
	Store         *store.Store
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return apierr.ErrUnavailable.Msg("health check failed: %v", err)
	}

	return ctx.JSON(fiber.Map{
		"status":      "ok",
		"subscribers": c.Store.Subscribers(),
	})
}
