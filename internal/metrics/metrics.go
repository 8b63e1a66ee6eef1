// Package metrics exposes Prometheus instrumentation for frame composition
// and the HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-skylight/internal/lighting"
)

const namespace = "skylight"

// Compose results.
const (
	ResultOK      = "ok"
	ResultNoState = "no_state"
	ResultError   = "error"
)

// Metrics holds the collectors of one process. Each instance owns its
// registry so tests can build isolated sets.
type Metrics struct {
	registry *prometheus.Registry

	framesComposed *prometheus.CounterVec
	composeLatency prometheus.Histogram
	requestLatency *prometheus.HistogramVec
	lightIntensity prometheus.Gauge
	nightFactor    prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		framesComposed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_composed_total",
				Help:      "Lighting frames composed, by result.",
			},
			[]string{"result"},
		),
		composeLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "compose_seconds",
				Help:      "Time spent composing a lighting frame in seconds.",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_latency",
				Help:      "HTTP request latencies in seconds.",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0},
			},
			[]string{"verb", "path", "code"},
		),
		lightIntensity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "light_intensity",
			Help:      "Directional light intensity of the last composed frame.",
		}),
		nightFactor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "night_factor",
			Help:      "Night-lights factor of the last composed frame.",
		}),
	}

	m.registry.MustRegister(
		m.framesComposed,
		m.composeLatency,
		m.requestLatency,
		m.lightIntensity,
		m.nightFactor,
	)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCompose records one composition attempt. frame may be nil when
// err is set.
func (m *Metrics) ObserveCompose(frame *lighting.Frame, d time.Duration, err error) {
	m.composeLatency.Observe(d.Seconds())
	m.framesComposed.WithLabelValues(ResultFor(err)).Inc()
	if frame != nil {
		m.lightIntensity.Set(frame.Light.Intensity)
		m.nightFactor.Set(frame.Night.Factor)
	}
}

// ResultFor maps a compose error to its result label.
func ResultFor(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, lighting.ErrNoLightingState):
		return ResultNoState
	default:
		return ResultError
	}
}

// ObserveRequestLatency records one HTTP request.
func (m *Metrics) ObserveRequestLatency(verb, path, code string, latency float64) {
	m.requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// LatencyHandler wraps next and records its latency. The path label is the
// matched mux route template when there is one.
func (m *Metrics) LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		// Panics in next are reported as 500 errors and then re-thrown.
		defer func() {
			path := routePath(r)
			if err := recover(); err != nil {
				m.ObserveRequestLatency(r.Method, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			m.ObserveRequestLatency(r.Method, path, strconv.Itoa(rec.code()), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	if r.URL != nil {
		return r.URL.Path
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		// Unset, will be set to 200 by stdlib.
		return http.StatusOK
	}
	return s.status
}
