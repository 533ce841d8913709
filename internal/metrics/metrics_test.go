package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRecharge(t *testing.T) {
	before := testutil.ToFloat64(RechargesTotal.WithLabelValues(OutcomeCommitted))

	ObserveRecharge(OutcomeCommitted, time.Now().Add(-10*time.Millisecond))

	after := testutil.ToFloat64(RechargesTotal.WithLabelValues(OutcomeCommitted))
	assert.Equal(t, before+1, after)
	assert.Positive(t, testutil.CollectAndCount(RechargeDuration))
}
