// Package metrics exposes Prometheus collectors for the scheduler and the
// renderer. A nil *Collector is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "treeparty"

type Collector struct {
	flushes       prometheus.Counter
	flushJobs     prometheus.Histogram
	flushDuration prometheus.Histogram
	hostOps       *prometheus.CounterVec
	components    *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated from the default registry.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "flushes_total",
			Help:      "Total scheduler flushes",
		}),
		flushJobs: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "flush_jobs",
			Help:      "Jobs run per flush",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "flush_duration_seconds",
			Help:      "Time spent running one flush",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		// Labels: op (create_element, create_text, insert, remove, patch_prop, set_element_text, set_text)
		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "renderer",
			Name:      "host_ops_total",
			Help:      "Host mutations issued by the renderer",
		}, []string{"op"}),
		// Labels: event (mount, update, unmount)
		components: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "renderer",
			Name:      "component_events_total",
			Help:      "Component lifecycle events",
		}, []string{"event"}),
	}
}

// ObserveFlush records one scheduler flush.
func (c *Collector) ObserveFlush(jobs int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.flushes.Inc()
	c.flushJobs.Observe(float64(jobs))
	c.flushDuration.Observe(elapsed.Seconds())
}

// ObserveHostOp counts one host mutation.
func (c *Collector) ObserveHostOp(op string) {
	if c == nil {
		return
	}
	c.hostOps.WithLabelValues(op).Inc()
}

// ObserveComponent counts one component lifecycle event.
func (c *Collector) ObserveComponent(event string) {
	if c == nil {
		return
	}
	c.components.WithLabelValues(event).Inc()
}

// HostOps returns the host operation counters, keyed by op.
func (c *Collector) HostOps() *prometheus.CounterVec {
	return c.hostOps
}
