// Package telemetry reports bestfirst searches as Prometheus metrics,
// OpenTelemetry spans and structured logs.
package telemetry

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/pdrpinto/bestfirst"
)

// Result label values of the searches counter.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
)

// Metrics holds the search collectors.
//
// Thread Safety: Safe for concurrent use.
type Metrics struct {
	searches   *prometheus.CounterVec
	expansions prometheus.Histogram
	duration   prometheus.Histogram
	planLength prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with registerer.
// A nil registerer creates unregistered collectors.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bestfirst_searches_total",
			Help: "Total searches by result",
		}, []string{"result"}),
		expansions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bestfirst_search_expansions",
			Help:    "Node expansions per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12), // 1 to ~4M
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bestfirst_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}),
		planLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bestfirst_plan_length",
			Help:    "Number of actions in found plans",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
	}
}

// Observe records one finished search.
func (m *Metrics) Observe(stats bestfirst.Stats) {
	if stats.Found {
		m.searches.WithLabelValues(ResultFound).Inc()
		m.planLength.Observe(float64(stats.PlanLength))
	} else {
		m.searches.WithLabelValues(ResultNotFound).Inc()
	}
	m.expansions.Observe(float64(stats.Expansions))
	m.duration.Observe(stats.Elapsed.Seconds())
}

// WriteText writes every metric family of gatherer in the Prometheus text format.
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("encode %s: %w", family.GetName(), err)
		}
	}
	return nil
}
