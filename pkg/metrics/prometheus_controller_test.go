package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/require"
)

var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "org",
	Subsystem: "test",
	Name:      "controller_hits_total",
	Help:      "Counter used by the controller test.",
})

func serve(r *mux.Router, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestPrometheusController_Register(t *testing.T) {
	c := NewPrometheusController("")
	require.Equal(t, DefaultPath, c.Key())

	r := mux.NewRouter()
	c.Register(r)
	testCounter.Inc()

	rr := serve(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "org_test_controller_hits_total 1")

	require.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodPost, "/metrics").Code)

	rr = serve(r, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok\n", rr.Body.String())
}

func TestPrometheusController_Options(t *testing.T) {
	reg := prometheus.NewRegistry()
	own := prometheus.NewCounter(prometheus.CounterOpts{Name: "own_total", Help: "Registry-local counter."})
	reg.MustRegister(own)
	own.Add(2)

	r := mux.NewRouter()
	NewPrometheusController("/debug/metrics", WithGatherer(reg), WithHealthPath("")).Register(r)

	rr := serve(r, http.MethodGet, "/debug/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "own_total 2")
	require.NotContains(t, rr.Body.String(), "org_test_controller_hits_total")

	require.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/healthz").Code)
}
