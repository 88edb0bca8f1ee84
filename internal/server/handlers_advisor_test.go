package server

import (
	"net/http"
	"testing"

	"github.com/10543610-ai/WealthFlow-AI/internal/services/advisor"
)

// The test server runs without a Gemini client, so advisory endpoints
// must return their fixed fallbacks with a 200, never an error.

func TestAdvisorAnalyzeFallsBack(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := registerIdentity(t, h, "Alice", "alice@example.com")

	rr := doJSON(t, h, http.MethodPost, "/api/advisor/analyze", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("analyze failed: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Analysis string `json:"analysis"`
	}
	decodeBody(t, rr, &resp)
	if resp.Analysis != advisor.FallbackNoKey {
		t.Errorf("expected no-key fallback, got %q", resp.Analysis)
	}
}

func TestAdvisorSuggestCategoryFallsBack(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := registerIdentity(t, h, "Alice", "alice@example.com")

	rr := doJSON(t, h, http.MethodPost, "/api/advisor/suggest-category", token, map[string]string{
		"description": "dinner with friends",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("suggest failed: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Category string `json:"category"`
	}
	decodeBody(t, rr, &resp)
	if resp.Category != "Other" {
		t.Errorf("expected fallback category Other, got %q", resp.Category)
	}
}

func TestAdvisorSuggestCategoryValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := registerIdentity(t, h, "Alice", "alice@example.com")

	rr := doJSON(t, h, http.MethodPost, "/api/advisor/suggest-category", token, map[string]string{
		"description": "",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty description, got %d", rr.Code)
	}
}
