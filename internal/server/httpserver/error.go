package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/statismics/backend/internal/pkg/apierr"
	"github.com/statismics/backend/internal/pkg/flog"
)

func handleCustomError(ctx *fiber.Ctx, e *apierr.APIError) error {
	flog.WarnFrom(ctx).
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	return ctx.Status(e.StatusCode).JSON(e.Body())
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		return handleCustomError(ctx, apiErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		// routing errors (404, 405) are not worth a stack trace
		if fiberErr.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, apierr.New(fiberErr.Code, "UNKNOWN_ERROR", fiberErr.Message))
		}
	}

	re := apierr.ErrInternalError
	if fiberErr != nil {
		re = apierr.New(fiberErr.Code, "UNKNOWN_ERROR", fiberErr.Message)
	}

	flog.ErrorFrom(ctx).
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if id, ok := flog.IDFromFiberCtx(ctx); ok {
			hub.Scope().SetTag("request_id", id.String())
		}
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, re)
}
