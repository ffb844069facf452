package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	once sync.Once

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentadmin",
			Name:      "operations_total",
			Help:      "Operations by component, operation and outcome.",
		},
		[]string{"component", "operation", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(operations)
	})
}

// IncOp increments the operation counter.
func IncOp(component, operation, outcome string) {
	operations.WithLabelValues(component, operation, outcome).Inc()
}
