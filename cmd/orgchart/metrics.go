package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/pkg/metrics"
)

func metricsRouter() *mux.Router {
	r := mux.NewRouter()
	metrics.NewPrometheusController(metrics.DefaultPath).Register(r)
	return r
}

func startMetricsServer(addr string, log *logrus.Entry) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return srv
}
