package rekuest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statismics/backend/internal/pkg/apierr"
)

type lookupRequest struct {
	Username string `json:"username" validate:"required,githubhandle"`
}

func TestValidStruct(t *testing.T) {
	assert.NoError(t, ValidStruct(&lookupRequest{Username: "octocat"}))

	err := ValidStruct(&lookupRequest{Username: "not a user"})
	require.Error(t, err)

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.CodeInvalidRequest, apiErr.ErrorCode)

	violations := (*apiErr.Extras)["violations"].([]*ErrorResponse)
	require.Len(t, violations, 1)
	assert.Equal(t, "lookupRequest.Username", violations[0].Field)
	assert.Equal(t, "githubhandle", violations[0].Violation)
	assert.Equal(t, "Username must be a valid GitHub username", violations[0].Message)
}

func TestValidStructRequired(t *testing.T) {
	err := ValidStruct(&lookupRequest{})

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	violations := (*apiErr.Extras)["violations"].([]*ErrorResponse)
	require.Len(t, violations, 1)
	assert.Equal(t, "required", violations[0].Violation)
}
