package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/ledger"
	"github.com/10543610-ai/WealthFlow-AI/internal/valuation"
)

// handleAggregate handles GET /api/aggregate: the full financial
// snapshot for the signed-in identity.
func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
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
	WriteJSON(w, http.StatusOK, snap)
}

type summaryResponse struct {
	TotalBalance      decimal.Decimal            `json:"total_balance"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpense      decimal.Decimal            `json:"total_expense"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	Portfolio         valuation.PortfolioTotals  `json:"portfolio"`
	NetWorth          decimal.Decimal            `json:"net_worth"`
}

// handleSummary handles GET /api/summary: ledger totals plus portfolio
// valuation in one response.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
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

	income, expense := ledger.IncomeExpenseTotals(snap.Transactions)
	balance := ledger.TotalBalance(snap.Accounts)
	portfolio := valuation.ComputePortfolioTotals(snap.Stocks)

	WriteJSON(w, http.StatusOK, summaryResponse{
		TotalBalance:      balance,
		TotalIncome:       income,
		TotalExpense:      expense,
		CategoryBreakdown: ledger.CategoryBreakdown(snap.Transactions),
		Portfolio:         portfolio,
		NetWorth:          balance.Add(portfolio.TotalValue),
	})
}
