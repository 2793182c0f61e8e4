package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsComputed counts dashboard report computations.
	ReportsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garagelog_reports_computed_total",
		Help: "Number of dashboard reports computed.",
	})

	// EventsIngested counts events accepted through the MQTT ingest path.
	EventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagelog_events_ingested_total",
		Help: "Number of events ingested over MQTT, by kind.",
	}, []string{"kind"})

	// EventsRejected counts ingest payloads that failed to decode or store.
	EventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagelog_events_rejected_total",
		Help: "Number of ingest payloads rejected, by reason.",
	}, []string{"reason"})

	// RequestDuration observes HTTP request latency by route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "garagelog_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
