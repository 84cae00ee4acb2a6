package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEntitlementDecisionsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(EntitlementDecisionsTotal.WithLabelValues("quota", OutcomeDenied))

	EntitlementDecisionsTotal.WithLabelValues("quota", Outcome(false)).Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(EntitlementDecisionsTotal.WithLabelValues("quota", OutcomeDenied)))
	assert.Equal(t, OutcomeAllowed, Outcome(true))
}
