package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/app/appconfig"
	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/apierr"
	"github.com/statismics/backend/internal/pkg/cachectrl"
	"github.com/statismics/backend/internal/pkg/fiberstore"
	"github.com/statismics/backend/internal/pkg/flog"
	"github.com/statismics/backend/internal/server/svr"
	"github.com/statismics/backend/internal/service"
	"github.com/statismics/backend/internal/util/rekuest"
)

type Lookup struct {
	fx.In

	LookupService *service.Lookup
	Config        *appconfig.Config
	// Redis is nil when not configured; the rate limiter then counts in memory.
	Redis *redis.Client `optional:"true"`
}

func RegisterLookup(v1 *svr.V1, c Lookup) {
	v1.Post("/lookup", c.rateLimiter(), c.Submit)
}

// rateLimiter bounds lookups per client, each of which costs a few dozen
// GitHub requests.
func (c *Lookup) rateLimiter() fiber.Handler {
	if c.Config.LookupRateLimit <= 0 {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	cfg := limiter.Config{
		Max:        c.Config.LookupRateLimit,
		Expiration: time.Minute,
		LimitReached: func(ctx *fiber.Ctx) error {
			return apierr.ErrTooManyRequests
		},
	}
	if c.Redis != nil {
		cfg.Storage = fiberstore.NewRedis(c.Redis, "statismics:limiter:lookup:")
	}
	return limiter.New(cfg)
}

// Submit starts looking up a GitHub user. The response is the loading
// snapshot; the finished one is pushed over /events.
func (c *Lookup) Submit(ctx *fiber.Ctx) error {
	var request model.LookupRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("evt.name", "lookup.submit").
		Str("username", request.Username).
		Msg("lookup requested")

	snapshot := c.LookupService.Submit(request.Username)

	cachectrl.OptOut(ctx)
	return ctx.Status(fiber.StatusAccepted).JSON(snapshot)
}
