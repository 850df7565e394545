// Package metrics serves Prometheus metrics and a health route over a
// gorilla/mux router.
package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DefaultPath       = "/metrics"
	DefaultHealthPath = "/healthz"
)

type PrometheusController struct {
	path       string
	healthPath string
	gatherer   prometheus.Gatherer
}

type Option func(*PrometheusController)

// WithGatherer serves g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(c *PrometheusController) {
		c.gatherer = g
	}
}

// WithHealthPath moves the liveness route; an empty path disables it.
func WithHealthPath(path string) Option {
	return func(c *PrometheusController) {
		c.healthPath = path
	}
}

func NewPrometheusController(path string, opts ...Option) *PrometheusController {
	if path == "" {
		path = DefaultPath
	}
	c := &PrometheusController{
		path:       path,
		healthPath: DefaultHealthPath,
		gatherer:   prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	handler := promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
	r.Handle(c.path, handler).Methods(http.MethodGet)
	if c.healthPath != "" {
		r.HandleFunc(c.healthPath, health).Methods(http.MethodGet)
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
