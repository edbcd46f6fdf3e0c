package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(BookingTransitions.WithLabelValues("Pending", "Confirmed"))
	RecordTransition("Pending", "Confirmed")
	after := testutil.ToFloat64(BookingTransitions.WithLabelValues("Pending", "Confirmed"))
	assert.Equal(t, before+1, after)
}

func TestRecordHTTPMetrics(t *testing.T) {
	RecordHTTPMetrics("GET", "/api/health", 200, 5*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/health", "200")))
}
