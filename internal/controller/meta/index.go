package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/statismics/backend/internal/pkg/bininfo"
	"github.com/statismics/backend/internal/server/svr"
)

func RegisterIndex(meta *svr.Meta) {
	meta.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "GitHub Statismics API",
			"version": bininfo.Version,
			"endpoints": []string{
				"POST /api/v1/lookup",
				"GET /api/v1/snapshot",
				"GET /api/v1/events",
				"GET /api/v1/charts",
				"GET /api/v1/charts/:chartId/svg",
				"GET /api/_/health",
				"GET /api/_/bininfo",
			},
		})
	})
}
