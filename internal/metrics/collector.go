// Package metrics exposes mapper activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector records plan compilation and mapping calls.
//
// Metrics:
//   - structmap_plans_compiled_total: plans compiled, by outcome
//   - structmap_plans_merged_total: declarations merged into existing plans
//   - structmap_plan_compile_seconds: compile latency
//   - structmap_mappings_total: top-level mapping calls, by outcome
//   - structmap_mapping_seconds: top-level mapping latency
type Collector struct {
	plansCompiled *prometheus.CounterVec
	plansMerged   prometheus.Counter
	compileTime   prometheus.Histogram
	mappings      *prometheus.CounterVec
	mappingTime   prometheus.Histogram
}

// NewCollector creates the metrics and registers them on registerer. A nil
// registerer leaves them unregistered.
func NewCollector(namespace string, registerer prometheus.Registerer) *Collector {
	if namespace == "" {
		namespace = "structmap"
	}

	c := &Collector{
		plansCompiled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_compiled_total",
				Help:      "Total number of type map compilations",
			},
			[]string{"outcome"},
		),

		plansMerged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_merged_total",
				Help:      "Total number of definitions merged into existing type maps",
			},
		),

		compileTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_compile_seconds",
				Help:      "Type map compilation latency",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
		),

		mappings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mappings_total",
				Help:      "Total number of top-level mapping calls",
			},
			[]string{"outcome"},
		),

		mappingTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mapping_seconds",
				Help:      "Top-level mapping call latency",
				Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
		),
	}

	if registerer != nil {
		registerer.MustRegister(
			c.plansCompiled,
			c.plansMerged,
			c.compileTime,
			c.mappings,
			c.mappingTime,
		)
	}

	return c
}

// RecordCompile records a successful compilation.
func (c *Collector) RecordCompile(elapsed time.Duration) {
	c.plansCompiled.WithLabelValues(OutcomeSuccess).Inc()
	c.compileTime.Observe(elapsed.Seconds())
}

// RecordCompileFailure records a compilation that produced errors.
func (c *Collector) RecordCompileFailure() {
	c.plansCompiled.WithLabelValues(OutcomeError).Inc()
}

// RecordMerge records a definition merged into an existing plan.
func (c *Collector) RecordMerge() {
	c.plansMerged.Inc()
}

// RecordMapping records one top-level mapping call.
func (c *Collector) RecordMapping(elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}

	c.mappings.WithLabelValues(outcome).Inc()
	c.mappingTime.Observe(elapsed.Seconds())
}
