// Package valuation computes cost basis, market value, and gain/loss for
// stock holdings, and provides the simulated price feed. All functions
// are pure; the caller supplies the randomness source for price ticks.
package valuation

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

var hundred = decimal.NewFromInt(100)

// HoldingMetrics are the derived values for a single holding.
// GainLossPercent is zero when the average cost is zero; the sentinel
// for "not applicable", never NaN or infinity.
type HoldingMetrics struct {
	MarketValue     decimal.Decimal `json:"market_value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent decimal.Decimal `json:"gain_loss_percent"`
}

// PortfolioTotals are the derived values across all holdings.
// TotalGainLossPercent is zero when the total cost is zero.
type PortfolioTotals struct {
	TotalCost            decimal.Decimal `json:"total_cost"`
	TotalValue           decimal.Decimal `json:"total_value"`
	TotalGainLoss        decimal.Decimal `json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal `json:"total_gain_loss_percent"`
}

// ComputeHoldingMetrics derives market value and unrealized gain/loss
// for one holding.
func ComputeHoldingMetrics(h models.StockHolding) HoldingMetrics {
	marketValue := h.Shares.Mul(h.CurrentPrice)
	cost := h.Shares.Mul(h.AvgCost)
	gainLoss := marketValue.Sub(cost)

	gainLossPercent := decimal.Zero
	if !h.AvgCost.IsZero() {
		gainLossPercent = h.CurrentPrice.Sub(h.AvgCost).Div(h.AvgCost).Mul(hundred)
	}

	return HoldingMetrics{
		MarketValue:     marketValue,
		GainLoss:        gainLoss,
		GainLossPercent: gainLossPercent,
	}
}

// ComputePortfolioTotals aggregates cost basis and market value across
// the supplied holdings.
func ComputePortfolioTotals(holdings []models.StockHolding) PortfolioTotals {
	totals := PortfolioTotals{
		TotalCost:            decimal.Zero,
		TotalValue:           decimal.Zero,
		TotalGainLoss:        decimal.Zero,
		TotalGainLossPercent: decimal.Zero,
	}
	for _, h := range holdings {
		totals.TotalCost = totals.TotalCost.Add(h.Shares.Mul(h.AvgCost))
		totals.TotalValue = totals.TotalValue.Add(h.Shares.Mul(h.CurrentPrice))
	}
	totals.TotalGainLoss = totals.TotalValue.Sub(totals.TotalCost)
	if !totals.TotalCost.IsZero() {
		totals.TotalGainLossPercent = totals.TotalGainLoss.Div(totals.TotalCost).Mul(hundred)
	}
	return totals
}

// SimulatePriceTick returns a new holdings slice where each current
// price has moved by an independent uniform draw in [0.95, 1.05),
// rounded to two decimal places. This stands in for a live market feed:
// the seed is never persisted, so ticks are non-reproducible by design.
func SimulatePriceTick(holdings []models.StockHolding, rng *rand.Rand) []models.StockHolding {
	ticked := make([]models.StockHolding, len(holdings))
	copy(ticked, holdings)
	for i := range ticked {
		factor := decimal.NewFromFloat(0.95 + rng.Float64()*0.10)
		ticked[i].CurrentPrice = ticked[i].CurrentPrice.Mul(factor).Round(2)
	}
	return ticked
}

// HoldingInput is the caller-supplied portion of a new holding.
type HoldingInput struct {
	Symbol  string
	Name    string
	Market  string
	Shares  decimal.Decimal
	AvgCost decimal.Decimal
}

// NewHolding validates the input and builds a holding with a fresh
// identifier. A new holding starts at breakeven: current price is
// initialized to the average cost exactly.
func NewHolding(input HoldingInput) (models.StockHolding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return models.StockHolding{}, fmt.Errorf("symbol is required")
	}
	if !input.Shares.IsPositive() {
		return models.StockHolding{}, fmt.Errorf("shares must be greater than zero")
	}
	if !input.AvgCost.IsPositive() {
		return models.StockHolding{}, fmt.Errorf("average cost must be greater than zero")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = symbol
	}

	return models.StockHolding{
		ID:           uuid.New().String(),
		Symbol:       symbol,
		Name:         name,
		Shares:       input.Shares,
		AvgCost:      input.AvgCost,
		CurrentPrice: input.AvgCost,
		Market:       strings.TrimSpace(input.Market),
	}, nil
}
