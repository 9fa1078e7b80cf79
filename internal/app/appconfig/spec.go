package appconfig

import (
	"time"

	"github.com/statismics/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving the page and the API.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:16097"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFilePath is the path of the rotated log file. Leaving this empty disables file logging.
	LogFilePath string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"10s"`

	// GitHubToken is the personal access token used against the GitHub API. When empty, the oauth
	// entry of GitHubCredentialsFile is used instead. Requests are made anonymously if neither is present.
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	// GitHubCredentialsFile is a property file holding an "oauth=<token>" line. A leading ~ expands
	// to the home directory.
	GitHubCredentialsFile string `envconfig:"GITHUB_CREDENTIALS_FILE" default:"~/.github"`

	// GitHubBaseURL overrides the GitHub REST API endpoint, e.g. for GitHub Enterprise.
	GitHubBaseURL string `envconfig:"GITHUB_BASE_URL"`

	// GitHubTimeout is the timeout of a single request to GitHub.
	GitHubTimeout time.Duration `envconfig:"GITHUB_TIMEOUT" default:"15s"`

	// PageSize is the number of followers, followings and repositories fetched for a user.
	PageSize int `required:"true" split_words:"true" default:"50"`

	// FetchConcurrency bounds how many repositories have their statistics fetched at once.
	FetchConcurrency int `required:"true" split_words:"true" default:"8"`

	// StatsRetryAttempts is how many times a statistics request answered with 202 Accepted is attempted.
	StatsRetryAttempts uint `required:"true" split_words:"true" default:"4"`

	// StatsRetryDelay is the delay in-between statistics request attempts.
	StatsRetryDelay time.Duration `required:"true" split_words:"true" default:"1s"`

	// LookupTimeout bounds a whole lookup.
	LookupTimeout time.Duration `required:"true" split_words:"true" default:"2m"`

	// LookupRateLimit is how many lookups a client may submit per minute. Zero disables the limit.
	LookupRateLimit int `split_words:"true" default:"30"`

	// CacheTTL is how long GitHub responses are kept. Zero disables caching.
	CacheTTL time.Duration `split_words:"true" default:"5m"`

	// RedisURL is the URL of the Redis server used to cache GitHub responses. Leaving this empty keeps
	// the cache in memory. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	RedisURL string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// TracingEnabled to indicate whether to export OpenTelemetry traces of lookups to stdout.
	TracingEnabled bool `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
