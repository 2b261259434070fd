// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScansTotal counts scan submissions by direction and outcome. Outcome is
// one of: accepted, not_found, duplicate, capacity, cooldown, error.
var ScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gym_scans_total",
		Help: "Number of processed scan submissions by event type and outcome.",
	},
	[]string{"type", "outcome"},
)
