package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/revit/marketplace/internal/core/domain"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(nil)
	c, rec := newContext(http.MethodGet, "/health", "", domain.Principal{})
	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		checks map[string]HealthChecker
		code   int
		status string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", map[string]HealthChecker{"mongodb": ok, "redis": ok}, http.StatusOK, "ok"},
		{"one down", map[string]HealthChecker{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.checks)
			c, rec := newContext(http.MethodGet, "/health/ready", "", domain.Principal{})
			if err := h.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp readinessResponse
			decode(t, rec, &resp)
			if resp.Status != tc.status || len(resp.Dependencies) != len(tc.checks) {
				t.Fatalf("unexpected body: %+v", resp)
			}
			if tc.name == "one down" && resp.Dependencies["redis"].Error != "connection refused" {
				t.Fatalf("expected redis error to be reported: %+v", resp.Dependencies)
			}
		})
	}
}
