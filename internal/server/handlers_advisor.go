package server

import (
	"net/http"
)

// handleAdvisorAnalyze handles POST /api/advisor/analyze: AI
// commentary on the current snapshot. Always returns 200; advisory
// failures degrade to a fallback message.
func (s *Server) handleAdvisorAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.Snapshot()
	if err != nil {
		WriteError(w, http.StatusConflict, "session closed")
		return
	}

	analysis := s.app.Advisor.AnalyzeFinances(r.Context(), snap)
	WriteJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

type suggestCategoryRequest struct {
	Description string `json:"description" validate:"required,min=1,max=500"`
}

// handleAdvisorSuggestCategory handles POST /api/advisor/suggest-category.
func (s *Server) handleAdvisorSuggestCategory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if ic := s.requireIdentity(w, r); ic == nil {
		return
	}

	var req suggestCategoryRequest
	if !DecodeValid(w, r, &req) {
		return
	}

	category := s.app.Advisor.SuggestCategory(r.Context(), req.Description)
	WriteJSON(w, http.StatusOK, map[string]string{"category": category})
}
