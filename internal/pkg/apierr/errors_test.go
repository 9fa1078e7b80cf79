package apierr

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request")

	changed := e.Msg("%s", "changed")
	assert.Equal(t, "invalid request", e.Message)
	assert.Equal(t, "changed", changed.Message)

	withExtras := e.WithExtras(Extras{"field": "username"})
	assert.Nil(t, e.Extras)
	assert.NotNil(t, withExtras.Extras)
}

func TestBody(t *testing.T) {
	e := NewInvalidViolations([]string{"username is required"})

	assert.Equal(t, fiber.Map{
		"code":       CodeInvalidRequest,
		"message":    ErrInvalidReq.Message,
		"violations": []string{"username is required"},
	}, e.Body())
	assert.Nil(t, ErrInvalidReq.Extras)
}

func TestError(t *testing.T) {
	assert.EqualError(t, ErrNotFound.Msg("chart %q not found", "languages"), `NOT_FOUND: chart "languages" not found`)
}
