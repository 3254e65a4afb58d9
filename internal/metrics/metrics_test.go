package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRPC(t *testing.T) {
	m := New()
	m.ObserveRPC("/settleup.v1.GroupService/GetGroup", "ok", 10*time.Millisecond)
	m.ObserveRPC("/settleup.v1.GroupService/GetGroup", "ok", 20*time.Millisecond)
	m.ObserveRPC("/settleup.v1.GroupService/GetGroup", "not_found", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("/settleup.v1.GroupService/GetGroup", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("/settleup.v1.GroupService/GetGroup", "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RPCDuration))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ExpenseRecorded()
	m.ExpenseRecorded()
	m.InstructionsComputed(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExpensesRecorded))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SettlementInstructions))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("p", "ok", time.Second)
		m.ExpenseRecorded()
		m.InstructionsComputed(1)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ExpenseRecorded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "settleup_expenses_recorded_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
