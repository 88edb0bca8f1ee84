package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthOpenWithoutAuth(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("health failed: %d", rr.Code)
	}
	var resp map[string]string
	decodeBody(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Errorf("unexpected health body: %v", resp)
	}
}

func TestVersionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := doJSON(t, h, http.MethodGet, "/api/version", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("version failed: %d", rr.Code)
	}
	var resp map[string]string
	decodeBody(t, rr, &resp)
	if resp["version"] == "" {
		t.Error("expected a version string")
	}
}

func TestConfigMasksSecrets(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.app.Config.Advisor.APIKey = "super-secret-gemini-key"
	h := srv.Handler()
	token := registerIdentity(t, h, "Connie Config", "connie@example.com")

	rr := doJSON(t, h, http.MethodGet, "/api/config", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("config failed: %d", rr.Code)
	}
	var resp map[string]interface{}
	decodeBody(t, rr, &resp)
	if key, _ := resp["advisor_api_key"].(string); key == "super-secret-gemini-key" {
		t.Error("API key leaked unmasked")
	}
}

func TestConfigRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := doJSON(t, h, http.MethodGet, "/api/config", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated config read, got %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/accounts", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := doJSON(t, h, http.MethodDelete, "/api/health", "", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
	if rr.Header().Get("Allow") == "" {
		t.Error("expected Allow header on 405")
	}
}
