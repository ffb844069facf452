package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestIncOp(t *testing.T) {
	Register()

	before := testutil.ToFloat64(operations.WithLabelValues("reservations", "reserve", OutcomeOK))
	IncOp("reservations", "reserve", OutcomeOK)
	after := testutil.ToFloat64(operations.WithLabelValues("reservations", "reserve", OutcomeOK))

	assert.Equal(t, before+1, after)
}
