package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portcall/pkg/config"
	"portcall/pkg/logger"
	"portcall/pkg/metrics"
	"portcall/pkg/middleware"
)

type routesFunc func(*httprouter.Router)

func (f routesFunc) RegisterRoutes(r *httprouter.Router) { f(r) }

type fakeWorker struct {
	started atomic.Bool
	closed  atomic.Bool
}

func (w *fakeWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	<-ctx.Done()
	return ctx.Err()
}

func (w *fakeWorker) Close() error {
	w.closed.Store(true)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1 << 20,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
	}
}

func newTestApp(t *testing.T, m *metrics.Metrics, workers ...*fakeWorker) *Application {
	t.Helper()
	a := NewApplication(testConfig())
	c := Components{
		AppHandler: routesFunc(func(r *httprouter.Router) {
			r.GET("/api/v1/berths", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
				w.WriteHeader(http.StatusOK)
			})
		}),
		HealthHandler: routesFunc(func(r *httprouter.Router) {
			r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
				w.WriteHeader(http.StatusOK)
			})
		}),
		Metrics:    m,
		RouteLabel: func(r *http.Request) string { return r.URL.Path },
	}
	for _, w := range workers {
		c.Workers = append(c.Workers, w)
	}
	a.SetApp(c)
	return a
}

func TestApplication_Routes(t *testing.T) {
	m := metrics.New()
	a := newTestApp(t, m)
	h := a.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/berths", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/berths", "200")))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "portcall_http_requests_total"))
}

func TestApplication_WithoutMetrics(t *testing.T) {
	a := newTestApp(t, nil)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplication_WorkersLifecycle(t *testing.T) {
	worker := &fakeWorker{}
	a := newTestApp(t, nil, worker)

	a.startWorkers()
	require.Eventually(t, worker.started.Load, time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		a.stopWorkers()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stopWorkers did not return")
	}
	assert.True(t, worker.closed.Load())
}
