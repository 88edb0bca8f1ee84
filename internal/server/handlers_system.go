package server

import (
	"net/http"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// maskSecret keeps the first and last two characters of a secret.
func maskSecret(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-2:]
}

// handleConfig reports the effective runtime configuration. It names
// storage endpoints, so it requires an authenticated identity and the
// advisor key is masked.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if s.requireIdentity(w, r) == nil {
		return
	}

	config := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       config.Environment,
		"storage_address":   config.Storage.Address,
		"storage_namespace": config.Storage.Namespace,
		"storage_database":  config.Storage.Database,
		"sync_debounce":     config.Sync.GetDebounce().String(),
		"advisor_model":     config.Advisor.Model,
		"advisor_api_key":   maskSecret(config.Advisor.APIKey),
		"log_level":         config.Logging.Level,
	})
}
