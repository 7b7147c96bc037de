package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/types"
)

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{Secret: "test-secret", Issuer: "inspectai-test", ExpirationMinutes: 30}
	return NewRouter(Deps{Config: cfg})
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-InspectAI-Env"); got != "test" {
		t.Fatalf("env header = %q", got)
	}
}

func TestResourceRoutesRequireAuth(t *testing.T) {
	router := testRouter()
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/inspections"},
		{http.MethodPost, "/api/photos"},
		{http.MethodGet, "/api/findings"},
		{http.MethodPost, "/api/reports"},
		{http.MethodGet, "/api/profile"},
	}

	for _, tc := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d", tc.method, tc.path, rec.Code)
		}
		var body types.ErrorBody
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s %s: decode body: %v", tc.method, tc.path, err)
		}
		if body.Error == "" {
			t.Fatalf("%s %s: empty error body", tc.method, tc.path)
		}
	}
}

func TestMetricsRouteAbsentWithoutHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
