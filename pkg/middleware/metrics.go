package middleware

import (
	"net/http"
	"strconv"
	"time"

	"portcall/pkg/metrics"
)

// RouteLabel maps a request to a bounded route label.
type RouteLabel func(r *http.Request) string

// HTTPMetrics records request counts and latency. Unknown paths collapse to
// "other" so arbitrary URLs cannot blow up label cardinality.
func HTTPMetrics(m *metrics.Metrics, route RouteLabel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			label := "other"
			if route != nil {
				label = route(r)
			}
			m.HTTPRequestsTotal.WithLabelValues(r.Method, label, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
		})
	}
}
