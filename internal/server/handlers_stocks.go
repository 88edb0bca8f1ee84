package server

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/valuation"
)

type holdingRequest struct {
	Symbol  string  `json:"symbol" validate:"required,min=1,max=12"`
	Name    string  `json:"name" validate:"max=100"`
	Market  string  `json:"market" validate:"max=20"`
	Shares  float64 `json:"shares" validate:"required,gt=0"`
	AvgCost float64 `json:"avg_cost" validate:"required,gt=0"`
}

type holdingView struct {
	models.StockHolding
	MarketValue     decimal.Decimal `json:"market_value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent decimal.Decimal `json:"gain_loss_percent"`
}

type portfolioView struct {
	Holdings []holdingView             `json:"holdings"`
	Totals   valuation.PortfolioTotals `json:"totals"`
}

func buildPortfolioView(holdings []models.StockHolding) portfolioView {
	views := make([]holdingView, 0, len(holdings))
	for _, h := range holdings {
		m := valuation.ComputeHoldingMetrics(h)
		views = append(views, holdingView{
			StockHolding:    h,
			MarketValue:     m.MarketValue,
			GainLoss:        m.GainLoss,
			GainLossPercent: m.GainLossPercent,
		})
	}
	return portfolioView{
		Holdings: views,
		Totals:   valuation.ComputePortfolioTotals(holdings),
	}
}

// handleStocks handles GET/POST /api/stocks.
func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleStockList(w, r)
	case http.MethodPost:
		s.handleStockAdd(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleStockList(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.Snapshot()
	if err != nil {
		WriteError(w, http.StatusConflict, "session closed")
		return
	}
	WriteJSON(w, http.StatusOK, buildPortfolioView(snap.Stocks))
}

// handleStockAdd creates a holding at breakeven: the current price
// starts equal to the average cost until the next price refresh.
func (s *Server) handleStockAdd(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	var req holdingRequest
	if !DecodeValid(w, r, &req) {
		return
	}

	holding, err := valuation.NewHolding(valuation.HoldingInput{
		Symbol:  req.Symbol,
		Name:    req.Name,
		Market:  req.Market,
		Shares:  decimal.NewFromFloat(req.Shares),
		AvgCost: decimal.NewFromFloat(req.AvgCost),
	})
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := sess.Update(func(agg *models.Aggregate) error {
		agg.Stocks = append(agg.Stocks, holding)
		return nil
	}); err != nil {
		writeAggregateError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, holding)
}

// routeStockByID dispatches DELETE /api/stocks/{id}.
func (s *Server) routeStockByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/stocks/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "holding id is required in path")
		return
	}
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	err := sess.Update(func(agg *models.Aggregate) error {
		for i := range agg.Stocks {
			if agg.Stocks[i].ID == id {
				agg.Stocks = append(agg.Stocks[:i], agg.Stocks[i+1:]...)
				return nil
			}
		}
		return errHoldingNotFound
	})
	if err != nil {
		writeAggregateError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleStocksRefresh handles POST /api/stocks/refresh: applies a
// simulated market tick to every holding.
func (s *Server) handleStocksRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	err := sess.Update(func(agg *models.Aggregate) error {
		agg.Stocks = valuation.SimulatePriceTick(agg.Stocks, rng)
		return nil
	})
	if err != nil {
		writeAggregateError(w, err)
		return
	}

	snap, err := sess.Snapshot()
	if err != nil {
		WriteError(w, http.StatusConflict, "session closed")
		return
	}
	WriteJSON(w, http.StatusOK, buildPortfolioView(snap.Stocks))
}
