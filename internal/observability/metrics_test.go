package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsTotals(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/clients", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/clients", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/clients/:id", "PATCH", 410, 2*time.Millisecond)
	m.RecordError("/api/clients/:id", "PATCH", "GONE")

	requests, errors := m.Totals()
	require.EqualValues(t, 3, requests)
	require.EqualValues(t, 1, errors)
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/health/live", "GET", 200, 0)
	m.RecordError("/health/live", "GET", "INTERNAL_ERROR")

	requests, errors := m.Totals()
	require.Zero(t, requests)
	require.Zero(t, errors)
}
