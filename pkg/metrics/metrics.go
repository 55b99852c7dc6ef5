package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "portcall"

// Resolution results.
const (
	ResultAssigned    = "assigned"
	ResultNoCandidate = "no_candidate"
	ResultExhausted   = "exhausted"
	ResultError       = "error"
)

// Metrics holds the Prometheus collectors of the berth service.
type Metrics struct {
	registry *prometheus.Registry

	// ResolutionsTotal counts resolver calls by result.
	ResolutionsTotal *prometheus.CounterVec

	// WindowShifts observes how many 15-minute shifts an assignment needed.
	WindowShifts prometheus.Histogram

	// VersionConflicts counts optimistic commits that lost a race.
	VersionConflicts prometheus.Counter

	ResolveDuration prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	KafkaMessagesTotal *prometheus.CounterVec
	KafkaDuration      *prometheus.HistogramVec
}

// New creates a private registry with the service collectors plus the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "berth_resolutions_total",
				Help:      "Total number of berth resolutions by result",
			},
			[]string{"result"},
		),

		WindowShifts: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "berth_window_shifts",
				Help:      "Number of window shifts needed to find a free berth",
				Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 96, 192, 672},
			},
		),

		VersionConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "berth_version_conflicts_total",
				Help:      "Total number of optimistic commit conflicts",
			},
		),

		ResolveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "berth_resolve_duration_seconds",
				Help:      "Time spent resolving a vessel visit",
				Buckets:   prometheus.DefBuckets,
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		KafkaMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "kafka_messages_total",
				Help:      "Total number of Kafka messages by direction, topic and status",
			},
			[]string{"direction", "topic", "status"},
		),

		KafkaDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "kafka_message_duration_seconds",
				Help:      "Kafka message handling latency",
				Buckets:   []float64{.005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"direction", "topic"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveResolution(result string, shifts int) {
	m.ResolutionsTotal.WithLabelValues(result).Inc()
	if result == ResultAssigned {
		m.WindowShifts.Observe(float64(shifts))
	}
}
