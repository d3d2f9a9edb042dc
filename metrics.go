package astar

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors an Engine reports to.
type Metrics struct {
	steps        prometheus.Counter
	runs         *prometheus.CounterVec
	frontierSize prometheus.Gauge
	visitedSize  prometheus.Gauge
	stepDuration prometheus.Histogram
	pathLength   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "astar_steps_total",
			Help: "Total expansion steps performed",
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astar_runs_total",
			Help: "Finished search runs by result",
		}, []string{"result"}),
		frontierSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "astar_frontier_size",
			Help: "Open set size after the last step",
		}),
		visitedSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "astar_visited_size",
			Help: "Closed set size after the last step",
		}),
		stepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astar_step_duration_seconds",
			Help:    "Duration of a single expansion step",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~0.26s
		}),
		pathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astar_path_length_cells",
			Help:    "Number of cells on found paths",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
	}
}

func (m *Metrics) observeStep(d time.Duration, frontier, visited int) {
	if m == nil {
		return
	}
	m.steps.Inc()
	m.stepDuration.Observe(d.Seconds())
	m.frontierSize.Set(float64(frontier))
	m.visitedSize.Set(float64(visited))
}

func (m *Metrics) observeSolved(pathLen int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues("found").Inc()
	m.pathLength.Observe(float64(pathLen))
}

func (m *Metrics) observeExhausted() {
	if m == nil {
		return
	}
	m.runs.WithLabelValues("no_path").Inc()
}
