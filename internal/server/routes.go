package server

import (
	"net/http"
	"time"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/logout", s.handleAuthLogout)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Aggregate views
	mux.HandleFunc("/api/aggregate", s.handleAggregate)
	mux.HandleFunc("/api/summary", s.handleSummary)

	// Accounts
	mux.HandleFunc("/api/accounts/", s.routeAccountByID)
	mux.HandleFunc("/api/accounts", s.handleAccounts)

	// Transactions
	mux.HandleFunc("/api/transactions/", s.routeTransactionByID)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Stocks
	mux.HandleFunc("/api/stocks/refresh", s.handleStocksRefresh)
	mux.HandleFunc("/api/stocks/", s.routeStockByID)
	mux.HandleFunc("/api/stocks", s.handleStocks)

	// Advisor
	mux.HandleFunc("/api/advisor/analyze", s.handleAdvisorAnalyze)
	mux.HandleFunc("/api/advisor/suggest-category", s.handleAdvisorSuggestCategory)
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
