// Package metrics holds the Prometheus instruments of the travel desk.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build outcomes recorded by ObserveBuild.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics provides observability for itinerary generation.
type Metrics struct {
	// Itinerary builds by outcome
	Builds *prometheus.CounterVec

	// Time spent loading the aggregate and building the schedule
	BuildDuration prometheus.Histogram

	// Length of generated itineraries in days
	DaysPerItinerary prometheus.Histogram

	// Items dated outside the stated trip range
	OutOfRangeItems prometheus.Counter
}

// New creates the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "traveldesk_itinerary_builds_total",
			Help: "Total itinerary builds by outcome",
		}, []string{"outcome"}), // outcome: "ok", "empty", "not_found", "rejected", "error"

		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "traveldesk_itinerary_build_duration_seconds",
			Help:    "Duration of itinerary builds including aggregate loading",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		DaysPerItinerary: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "traveldesk_itinerary_days",
			Help:    "Number of days in generated itineraries",
			Buckets: []float64{1, 3, 7, 14, 21, 30, 60, 90},
		}),

		OutOfRangeItems: f.NewCounter(prometheus.CounterOpts{
			Name: "traveldesk_itinerary_out_of_range_items_total",
			Help: "Itinerary items dated outside the stated trip range",
		}),
	}
}

// ObserveBuild records one itinerary build.
func (m *Metrics) ObserveBuild(outcome string, d time.Duration, days int) {
	if m == nil {
		return
	}
	m.Builds.WithLabelValues(outcome).Inc()
	m.BuildDuration.Observe(d.Seconds())
	if outcome == OutcomeOK {
		m.DaysPerItinerary.Observe(float64(days))
	}
}

// AddOutOfRange counts items found outside the stated trip range.
func (m *Metrics) AddOutOfRange(n int) {
	if m != nil && n > 0 {
		m.OutOfRangeItems.Add(float64(n))
	}
}
