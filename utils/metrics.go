package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors exposed on /metrics.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	SlotAllocations  *prometheus.CounterVec
	DaysCreatedTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slotbook_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slotbook_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SlotAllocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slotbook_slot_allocations_total",
			Help: "Slot allocation attempts by result.",
		}, []string{"result"}),
		DaysCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slotbook_days_created_total",
			Help: "Day documents created.",
		}),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.SlotAllocations, m.DaysCreatedTotal)
	return m
}

// ObserveAllocation counts one allocation attempt. Safe on a nil receiver.
func (m *Metrics) ObserveAllocation(result string) {
	if m == nil {
		return
	}
	m.SlotAllocations.WithLabelValues(result).Inc()
}

// ObserveDayCreated counts one created day document. Safe on a nil receiver.
func (m *Metrics) ObserveDayCreated() {
	if m == nil {
		return
	}
	m.DaysCreatedTotal.Inc()
}
