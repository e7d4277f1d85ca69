package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Collectors register against the default registry, so a single Metrics
// instance is shared across the tests in this package.
var testMetrics = NewMetrics(zap.NewNop())

func TestRecordStreamEventCountsByType(t *testing.T) {
	testMetrics.RecordStreamEvent("thinking")
	testMetrics.RecordStreamEvent("thinking")
	testMetrics.RecordStreamEvent("complete")

	assert.Equal(t, 2.0, testutil.ToFloat64(testMetrics.streamEventsTotal.WithLabelValues("thinking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.streamEventsTotal.WithLabelValues("complete")))
}

func TestRecordPlanCreatedCountsByOutcome(t *testing.T) {
	testMetrics.RecordPlanCreated("success", 0.8)
	testMetrics.RecordPlanCreated("degraded", 0.3)

	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.plansCreatedTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(testMetrics.plansCreatedTotal.WithLabelValues("degraded")))
}

func TestRecordConsolidationFallback(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.consolidationFallback)
	testMetrics.RecordConsolidationFallback()

	assert.Equal(t, before+1, testutil.ToFloat64(testMetrics.consolidationFallback))
}
