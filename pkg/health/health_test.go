package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anvilweb/anvil/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var report health.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Equal(t, health.StatusHealthy, report.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("passing checks", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{
			"one": func(ctx context.Context) error { return nil },
			"two": func(ctx context.Context) error { return nil },
		}
		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("failing check is 503", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{
			"ok":     func(ctx context.Context) error { return nil },
			"broken": func(ctx context.Context) error { return errors.New("connection refused") },
		}
		req := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var report health.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Equal(t, health.StatusUnhealthy, report.Status)
		require.Equal(t, health.StatusHealthy, report.Checks["ok"].Status)
		require.Equal(t, "connection refused", report.Checks["broken"].Error)
	})

	t.Run("slow check hits the timeout", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{
			"slow": func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Second):
					return nil
				}
			},
		}
		rec := httptest.NewRecorder()
		handler := health.ReadinessHandler(checks, health.WithTimeout(10*time.Millisecond))
		handler(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
