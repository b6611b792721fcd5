package services

import (
	"errors"
	"time"

	"flight-ops/dispatch/internal/metrics"
)

// observe records latency and failure kind of one service operation. m may be nil.
func observe(m *metrics.MetricsRegistry, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}
	m.RejectionsTotal.WithLabelValues(operation, ErrorKind(err)).Inc()

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		m.ConflictsTotal.WithLabelValues(conflict.Resource).Inc()
	}
}
