package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Address != "ws://localhost:8000/rpc" {
		t.Errorf("unexpected default storage address: %s", cfg.Storage.Address)
	}
	if cfg.Sync.GetDebounce() != time.Second {
		t.Errorf("expected default debounce 1s, got %v", cfg.Sync.GetDebounce())
	}
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wealthflow.toml")
	content := `
environment = "production"

[server]
port = 9090

[sync]
debounce = "250ms"

[advisor]
model = "gemini-2.5-pro"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Sync.GetDebounce() != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Sync.GetDebounce())
	}
	if cfg.Advisor.Model != "gemini-2.5-pro" {
		t.Errorf("unexpected advisor model: %s", cfg.Advisor.Model)
	}
	// Untouched sections keep defaults
	if cfg.Storage.Namespace != "wealthflow" {
		t.Errorf("unexpected storage namespace: %s", cfg.Storage.Namespace)
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/wealthflow.toml")
	if err != nil {
		t.Fatalf("LoadConfig should skip missing files: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults, got port %d", cfg.Server.Port)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WEALTHFLOW_PORT", "7070")
	t.Setenv("WEALTHFLOW_SYNC_DEBOUNCE", "2s")
	t.Setenv("WEALTHFLOW_AUTH_JWT_SECRET", "env-secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Sync.GetDebounce() != 2*time.Second {
		t.Errorf("expected env debounce 2s, got %v", cfg.Sync.GetDebounce())
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("expected env JWT secret, got %s", cfg.Auth.JWTSecret)
	}
}

func TestSyncConfig_InvalidDebounceFallsBack(t *testing.T) {
	c := SyncConfig{Debounce: "not-a-duration"}
	if c.GetDebounce() != time.Second {
		t.Errorf("expected 1s fallback, got %v", c.GetDebounce())
	}

	c = SyncConfig{Debounce: "-5s"}
	if c.GetDebounce() != time.Second {
		t.Errorf("expected 1s fallback for negative, got %v", c.GetDebounce())
	}
}

func TestAuthConfig_GetTokenExpiry(t *testing.T) {
	c := AuthConfig{TokenExpiry: "1h"}
	if c.GetTokenExpiry() != time.Hour {
		t.Errorf("expected 1h, got %v", c.GetTokenExpiry())
	}
	c = AuthConfig{TokenExpiry: "garbage"}
	if c.GetTokenExpiry() != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %v", c.GetTokenExpiry())
	}
}
