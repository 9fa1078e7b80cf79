package v1

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/pkg/apierr"
	"github.com/statismics/backend/internal/pkg/cachectrl"
	"github.com/statismics/backend/internal/render"
	"github.com/statismics/backend/internal/server/svr"
	"github.com/statismics/backend/internal/store"
)

var ErrChartNotFound = apierr.ErrNotFound.Msg("chart not found: the current snapshot has no chart with this id")

type Charts struct {
	fx.In

	Store *store.Store
}

func RegisterCharts(v1 *svr.V1, c Charts) {
	v1.Get("/charts", c.GetCharts)
	v1.Get("/charts/:chartId/svg", c.GetChartSVG)
}

// GetCharts returns the charts of the current snapshot as Chart.js configurations.
func (c *Charts) GetCharts(ctx *fiber.Ctx) error {
	snapshot := c.Store.Current()

	cachectrl.OptOut(ctx)
	return ctx.JSON(fiber.Map{
		"version": snapshot.Version,
		"query":   snapshot.Query,
		"charts":  render.ChartJSAll(snapshot.Charts),
	})
}

func (c *Charts) GetChartSVG(ctx *fiber.Ctx) error {
	snapshot := c.Store.Current()
	desc, ok := snapshot.Chart(ctx.Params("chartId"))
	if !ok {
		return ErrChartNotFound
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, desc); err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	ctx.Set(fiber.HeaderContentType, "image/svg+xml")
	return ctx.Send(buf.Bytes())
}
