package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordPlanMutation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPlanMutation("add_exercise", OutcomeOK)
	c.RecordPlanMutation("add_exercise", OutcomeOK)
	c.RecordPlanMutation("add_exercise", OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.planMutations.WithLabelValues("add_exercise", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.planMutations.WithLabelValues("add_exercise", OutcomeConflict)))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest(http.MethodGet, "/api/v1/plans", http.StatusOK, 25*time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `fittrack_http_request_duration_seconds_count{method="GET",route="/api/v1/plans",status="200"} 1`)
}

func TestNewCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}
