package fetcher

import (
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
)

var (
	// ErrUserNotFound is returned when the looked up user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrStatsNotReady is returned when GitHub kept answering a statistics
	// request with 202 Accepted.
	ErrStatsNotReady = errors.New("repository statistics are not ready yet")
)

// HTTPError is GitHub answering a request with an error status.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("github %s: %d %s", e.Endpoint, e.StatusCode, e.Message)
}

// classify turns an error of the GitHub client into ErrUserNotFound (when
// notFound is set and GitHub answered 404), an *HTTPError, or a wrapped
// transport error.
func classify(endpoint string, err error, notFound bool) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &HTTPError{
			Endpoint:   endpoint,
			StatusCode: rateErr.Response.StatusCode,
			Message:    "API rate limit exceeded, resets at " + rateErr.Rate.Reset.Time.Format("15:04:05 MST"),
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &HTTPError{
			Endpoint:   endpoint,
			StatusCode: abuseErr.Response.StatusCode,
			Message:    abuseErr.Message,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		if notFound && respErr.Response.StatusCode == http.StatusNotFound {
			return ErrUserNotFound
		}
		return &HTTPError{
			Endpoint:   endpoint,
			StatusCode: respErr.Response.StatusCode,
			Message:    respErr.Message,
		}
	}

	return errors.Wrapf(err, "github %s", endpoint)
}

func outcome(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, ErrStatsNotReady):
		return "not_ready"
	case errors.As(err, &httpErr):
		return "http_error"
	default:
		return "error"
	}
}
