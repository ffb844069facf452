package rental

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rentadmin/internal/metrics"
)

// opLogger tags every operation with a fresh id so the statements and
// the reported outcome of one call line up in the log.
func opLogger(base *zerolog.Logger, component, operation string) zerolog.Logger {
	return base.With().
		Str("component", component).
		Str("operation", operation).
		Str("op_id", uuid.New().String()).
		Logger()
}

func observe(component, operation string, err error) {
	var guard *IntegrityGuardError
	switch {
	case err == nil:
		metrics.IncOp(component, operation, metrics.OutcomeOK)
	case IsValidation(err) || errors.As(err, &guard):
		metrics.IncOp(component, operation, metrics.OutcomeRejected)
	default:
		metrics.IncOp(component, operation, metrics.OutcomeError)
	}
}
