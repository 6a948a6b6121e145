package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(t *testing.T, handler http.Handler, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/v1/performance", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://keeper-stats.example.com"}, okHandler())

	rec := corsRequest(t, handler, http.MethodGet, "https://keeper-stats.example.com")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://keeper-stats.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	rec := corsRequest(t, handler, http.MethodOptions, "https://keeper-stats.example.com")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	rec := corsRequest(t, handler, http.MethodGet, "https://not-allowed.example.com")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("non-preflight request should still reach the handler, got %d", rec.Code)
	}
}

func TestCORS_NoOriginHeaderPassesThrough(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	rec := corsRequest(t, handler, http.MethodGet, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS headers, got %q", got)
	}
}
