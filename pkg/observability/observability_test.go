package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_Check(t *testing.T) {
	checker := NewHealthChecker()
	checker.Register("netbilling_circuit", func(ctx context.Context) error { return nil })

	status := checker.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Checks["netbilling_circuit"])

	checker.Register("netbilling_circuit", func(ctx context.Context) error { return errors.New("circuit open") })
	status = checker.Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unhealthy: circuit open", status.Checks["netbilling_circuit"])
}

func TestMetricsHandler(t *testing.T) {
	checker := NewHealthChecker()
	checker.Register("always_down", func(ctx context.Context) error { return errors.New("down") })
	handler := NewMetricsHandler(checker)

	RecordGatewayTransaction("purchase", "approved", "credit_card", 0.2)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "netbilling_transactions_total")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unhealthy", status.Status)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordGatewayTransaction(t *testing.T) {
	before := testutil.ToFloat64(GatewayTransactionCount("capture", "declined", "reference"))
	RecordGatewayTransaction("capture", "declined", "reference", 0.5)
	assert.Equal(t, before+1, testutil.ToFloat64(GatewayTransactionCount("capture", "declined", "reference")))

	before = testutil.ToFloat64(ProtocolMismatchCount("capture"))
	RecordProtocolMismatch("capture")
	assert.Equal(t, before+1, testutil.ToFloat64(ProtocolMismatchCount("capture")))
}
