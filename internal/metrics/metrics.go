// Package metrics holds the prometheus collectors of the password service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var PasswordsGenerated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passgen_passwords_generated_total",
		Help: "Total passwords generated.",
	},
	[]string{"alphabet"},
)

var CharactersGenerated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passgen_characters_generated_total",
		Help: "Total password characters generated.",
	},
	[]string{"alphabet"},
)

var GenerationErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passgen_generation_errors_total",
		Help: "Total failed generation requests.",
	},
	[]string{"reason"},
)

var RequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "passgen_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		PasswordsGenerated,
		CharactersGenerated,
		GenerationErrors,
		RequestDuration,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
