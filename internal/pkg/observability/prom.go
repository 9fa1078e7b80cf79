package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "statismics"
)

var (
	LookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "lookup", "duration_seconds"),
		Help:    "Duration of user lookups in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"outcome"})
	GitHubRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "github", "requests_total"),
		Help: "Requests made to the GitHub API",
	}, []string{"endpoint", "outcome"})
	StatsRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "github", "stats_retries_total"),
		Help: "Retries of statistics requests GitHub answered with 202 Accepted",
	}, []string{"endpoint"})
	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "events", "subscribers"),
		Help: "Connected server-sent event subscribers",
	})
)
