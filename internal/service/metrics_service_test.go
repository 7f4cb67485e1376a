package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/AliciaPky/Astar/pkg/errors"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/students", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/students", http.StatusOK, 30*time.Millisecond)
	m.RecordOperation("add_student", nil)
	m.RecordOperation("remove_student", appErrors.Clone(appErrors.ErrNotFound, "student 1 not found"))
	m.ObserveSave(5*time.Millisecond, nil)
	m.ObserveSave(5*time.Millisecond, assert.AnError)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.01)
	assert.Equal(t, uint64(2), snap.OperationsTotal)
	assert.Equal(t, uint64(1), snap.OperationsRejected)
	assert.Equal(t, uint64(2), snap.SavesTotal)
	assert.Equal(t, uint64(1), snap.SaveFailures)
	assert.Greater(t, snap.Goroutines, 0)
}

func TestMetricsServiceHandlerExposesOperations(t *testing.T) {
	m := NewMetricsService()
	m.RecordOperation("enroll", appErrors.Clone(appErrors.ErrConflict, "already enrolled"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `registry_operations_total{operation="enroll",outcome="CONFLICT"} 1`))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordOperation("noop", nil)
	m.ObserveSave(time.Millisecond, nil)
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
