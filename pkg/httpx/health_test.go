package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/stockroom/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func runHealth(t *testing.T, checks httpx.HealthChecks) (int, healthBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, body
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	code, body := runHealth(t, httpx.HealthChecks{
		"database":   &stubChecker{},
		"redis":      &stubChecker{},
		"event_bus":  &stubChecker{},
		"blob_store": &stubChecker{},
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body.Status != "ok" || len(body.Checks) != 4 {
		t.Errorf("unexpected response: %+v", body)
	}
}

func TestHealthHandler_ComponentDown(t *testing.T) {
	for _, down := range []string{"database", "redis", "event_bus", "blob_store"} {
		t.Run(down, func(t *testing.T) {
			checks := httpx.HealthChecks{
				"database":   &stubChecker{},
				"redis":      &stubChecker{},
				"event_bus":  &stubChecker{},
				"blob_store": &stubChecker{},
			}
			checks[down] = &stubChecker{err: errors.New("conn refused")}

			code, body := runHealth(t, checks)
			if code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", code)
			}
			if body.Status != "degraded" || body.Checks[down] != "unreachable" {
				t.Errorf("unexpected response: %+v", body)
			}
		})
	}
}

func TestHealthHandler_SkipsNilCheckers(t *testing.T) {
	code, body := runHealth(t, httpx.HealthChecks{
		"database": &stubChecker{},
		"redis":    nil,
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if _, ok := body.Checks["redis"]; ok {
		t.Errorf("nil checker should not be reported: %+v", body)
	}
}
