package v1

import (
	"bufio"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
	"go.uber.org/fx"

	"github.com/statismics/backend/internal/model"
	"github.com/statismics/backend/internal/pkg/flog"
	"github.com/statismics/backend/internal/pkg/observability"
	"github.com/statismics/backend/internal/server/svr"
	"github.com/statismics/backend/internal/store"
)

const (
	EventSnapshot = "snapshot"

	// HeartbeatInterval is how often an idle stream is written to, so that
	// gone clients are noticed.
	HeartbeatInterval = 15 * time.Second
)

type Events struct {
	fx.In

	Store     *store.Store
	Lifecycle fx.Lifecycle
}

func RegisterEvents(v1 *svr.V1, c Events) {
	done := make(chan struct{})
	c.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})

	v1.Get("/events", func(ctx *fiber.Ctx) error {
		return c.Stream(ctx, done)
	})
}

// Stream sends the current snapshot and then every published one as
// server-sent events until the client disconnects or done is closed.
func (c *Events) Stream(ctx *fiber.Ctx, done <-chan struct{}) error {
	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// only the latest snapshot matters to a slow client
	updates := make(chan *model.Snapshot, 1)
	unsubscribe := c.Store.Subscribe(func(s *model.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	initial := c.Store.Current()

	l := flog.FromFiberCtx(ctx).With().Str("evt.name", "events.stream").Logger()

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		observability.EventSubscribers.Inc()
		defer observability.EventSubscribers.Dec()
		defer unsubscribe()

		l.Debug().Msg("event stream opened")

		var last uint64
		send := func(s *model.Snapshot) error {
			if s.Version != 0 && s.Version <= last {
				return nil
			}
			last = s.Version
			return writeEvent(w, EventSnapshot, s)
		}

		if err := send(initial); err != nil {
			l.Debug().Err(err).Msg("event stream closed")
			return
		}

		heartbeat := time.NewTicker(HeartbeatInterval)
		defer heartbeat.Stop()

		for {
			var err error
			select {
			case <-done:
				return
			case s := <-updates:
				err = send(s)
			case <-heartbeat.C:
				_, err = w.WriteString(": ping\n\n")
				if err == nil {
					err = w.Flush()
				}
			}
			if err != nil {
				l.Debug().Err(err).Msg("event stream closed")
				return
			}
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, event string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal event payload")
		return err
	}
	if _, err := w.WriteString("event: " + event + "\ndata: "); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
