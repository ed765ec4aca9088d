// Package metrics holds the prometheus collectors of the compute service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "compute_provisioner"

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics records discovery and provisioning activity. A nil *Metrics
// records nothing.
type Metrics struct {
	discoveryTotal       *prometheus.CounterVec
	discoveredInstances  *prometheus.CounterVec
	provisionTotal       *prometheus.CounterVec
	provisionedInstances *prometheus.CounterVec
	unitDuration         *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		discoveryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "discovery",
				Name:      "requests_total",
				Help:      "Total number of provider discoveries by result",
			},
			[]string{"provider", "result"},
		),
		discoveredInstances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "discovery",
				Name:      "instances_total",
				Help:      "Total number of instances returned by discovery",
			},
			[]string{"provider"},
		),
		provisionTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provision",
				Name:      "templates_total",
				Help:      "Total number of provisioned templates by outcome status or error code",
			},
			[]string{"provider", "status"},
		),
		provisionedInstances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provision",
				Name:      "instances_total",
				Help:      "Total number of instances created",
			},
			[]string{"provider"},
		),
		unitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "unit_duration_seconds",
				Help:      "Duration of one provider discovery or template creation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
			[]string{"operation", "provider"},
		),
	}

	reg.MustRegister(
		m.discoveryTotal,
		m.discoveredInstances,
		m.provisionTotal,
		m.provisionedInstances,
		m.unitDuration,
	)
	return m
}

// ObserveDiscovery records one provider discovery.
func (m *Metrics) ObserveDiscovery(provider string, instances int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.discoveryTotal.WithLabelValues(provider, result).Inc()
	m.discoveredInstances.WithLabelValues(provider).Add(float64(instances))
	m.unitDuration.WithLabelValues("discover", provider).Observe(elapsed.Seconds())
}

// ObserveProvision records one template creation. status is the outcome
// status, or the error code when the template failed before an outcome.
func (m *Metrics) ObserveProvision(provider, status string, created int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.provisionTotal.WithLabelValues(provider, status).Inc()
	m.provisionedInstances.WithLabelValues(provider).Add(float64(created))
	m.unitDuration.WithLabelValues("create", provider).Observe(elapsed.Seconds())
}
