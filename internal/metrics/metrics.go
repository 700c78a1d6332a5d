// Package metrics holds the Prometheus instruments shared by the API server
// and the worker. All collectors are registered with the default registry,
// so mounting promhttp.Handler() is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Trip creation outcomes.
const (
	OutcomeCreated       = "created"
	OutcomeAlreadyExists = "already_exists"
	OutcomeDateConflict  = "date_conflict"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

var (
	SlugChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripjournal_slug_checks_total",
			Help: "Slug availability checks by result (available, taken, invalid).",
		}, []string{"result"})

	TripCreationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripjournal_trip_creations_total",
			Help: "Trip creation attempts by outcome.",
		}, []string{"outcome"})

	AutoStoppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tripjournal_autostopped_trips_total",
			Help: "Live trips stopped by the auto-stop job.",
		})

	LiveSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tripjournal_live_subscribers",
			Help: "Open live trip feed connections.",
		})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripjournal_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		SlugChecksTotal,
		TripCreationsTotal,
		AutoStoppedTotal,
		LiveSubscribers,
		HTTPRequestDuration,
	)
}
