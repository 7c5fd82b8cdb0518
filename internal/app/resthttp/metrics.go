package resthttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sir_venger/blob_lite/pkg/blobproto"
	log "github.com/sirupsen/logrus"
)

const unmatchedRoute = "unmatched"

// metrics держит собственный реестр, чтобы несколько серверов в одном процессе (тесты) не конфликтовали.
type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	storedBytes prometheus.Counter
	blobs       prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blob_lite",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blob_lite",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		storedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blob_lite",
			Name:      "stored_bytes_total",
			Help:      "Bytes accepted by successful uploads.",
		}),
		blobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blob_lite",
			Name:      "blobs",
			Help:      "Blobs on disk as of the last health check.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.storedBytes,
		m.blobs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// instrument пишет метрики и строку access-лога по каждому запросу.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		if route == blobproto.HealthPath || route == blobproto.MetricsPath {
			return
		}

		entry := s.Log.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"route":       route,
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": elapsed.Milliseconds(),
			"remote_addr": r.RemoteAddr,
			"request_id":  middleware.GetReqID(r.Context()),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request complete")
		case status >= http.StatusBadRequest:
			entry.Warn("request complete")
		default:
			entry.Debug("request complete")
		}
	})
}
