package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(MilestoneUpdates.WithLabelValues("true"))
	IncrementMilestoneUpdate(true)
	assert.Equal(t, before+1, testutil.ToFloat64(MilestoneUpdates.WithLabelValues("true")))

	before = testutil.ToFloat64(DocumentUploads.WithLabelValues("rejected"))
	IncrementDocumentUpload("rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(DocumentUploads.WithLabelValues("rejected")))

	before = testutil.ToFloat64(RateLimited)
	IncrementRateLimited()
	assert.Equal(t, before+1, testutil.ToFloat64(RateLimited))
}

func TestHistogramObservations(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/api/timeline", "200", 25*time.Millisecond)
	RecordAssistantCall("chat", "ok", 800*time.Millisecond)

	assert.Positive(t, testutil.CollectAndCount(HTTPRequestDuration))
	assert.Positive(t, testutil.CollectAndCount(AssistantCallLatency))
}
