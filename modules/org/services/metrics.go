package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

var (
	orgParses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "hierarchy",
		Name:      "parses_total",
		Help:      "Total number of hierarchy parses broken down by result.",
	}, []string{"result"})

	orgDroppedLines = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "hierarchy",
		Name:      "dropped_lines_total",
		Help:      "Total number of input lines dropped as malformed.",
	})

	orgSyntheticRoots = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "hierarchy",
		Name:      "synthetic_roots_total",
		Help:      "Total number of parses that needed the synthetic Organization root.",
	})

	orgGraphBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "employee_graph",
		Name:      "builds_total",
		Help:      "Total number of employee graph builds broken down by result.",
	}, []string{"result"})

	orgGraphBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "org",
		Subsystem: "employee_graph",
		Name:      "build_duration_seconds",
		Help:      "Employee graph build latency including the transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
)

func recordParse(result string, dropped int, synthetic bool) {
	if result == "" {
		result = "ok"
	}
	orgParses.WithLabelValues(result).Inc()
	if dropped > 0 {
		orgDroppedLines.Add(float64(dropped))
	}
	if synthetic {
		orgSyntheticRoots.Inc()
	}
}

func recordGraphBuild(err error, started time.Time) {
	result := "ok"
	switch {
	case errors.Is(err, hierarchy.ErrCyclicHierarchy):
		result = "cyclic"
	case err != nil:
		result = "failed"
	}
	orgGraphBuilds.WithLabelValues(result).Inc()
	orgGraphBuildDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())
}
