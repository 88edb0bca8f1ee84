package valuation

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeHoldingMetrics(t *testing.T) {
	h := models.StockHolding{
		Shares:       dec(10),
		AvgCost:      dec(150),
		CurrentPrice: dec(185),
	}

	m := ComputeHoldingMetrics(h)

	if !m.MarketValue.Equal(dec(1850)) {
		t.Errorf("market value: expected 1850, got %s", m.MarketValue)
	}
	if !m.GainLoss.Equal(dec(350)) {
		t.Errorf("gain/loss: expected 350, got %s", m.GainLoss)
	}
	// (185-150)/150*100 = 23.33...%
	expectedPct := dec(185).Sub(dec(150)).Div(dec(150)).Mul(dec(100))
	if !m.GainLossPercent.Equal(expectedPct) {
		t.Errorf("gain/loss pct: expected %s, got %s", expectedPct, m.GainLossPercent)
	}
}

func TestComputeHoldingMetrics_ZeroAvgCost(t *testing.T) {
	h := models.StockHolding{
		Shares:       dec(5),
		AvgCost:      decimal.Zero,
		CurrentPrice: dec(100),
	}

	m := ComputeHoldingMetrics(h)

	if !m.GainLossPercent.IsZero() {
		t.Errorf("gain/loss pct must be the zero sentinel when avg cost is 0, got %s", m.GainLossPercent)
	}
	if !m.MarketValue.Equal(dec(500)) {
		t.Errorf("market value: expected 500, got %s", m.MarketValue)
	}
}

func TestComputePortfolioTotals(t *testing.T) {
	holdings := models.SampleAggregate().Stocks

	totals := ComputePortfolioTotals(holdings)

	// 1000*550 + 10*150 = 551500; 1000*780 + 10*185 = 781850
	if !totals.TotalCost.Equal(dec(551500)) {
		t.Errorf("total cost: expected 551500, got %s", totals.TotalCost)
	}
	if !totals.TotalValue.Equal(dec(781850)) {
		t.Errorf("total value: expected 781850, got %s", totals.TotalValue)
	}
	if !totals.TotalGainLoss.Equal(totals.TotalValue.Sub(totals.TotalCost)) {
		t.Error("gain/loss must equal value minus cost")
	}
}

func TestComputePortfolioTotals_EmptyIsZeroNotNaN(t *testing.T) {
	totals := ComputePortfolioTotals(nil)

	if !totals.TotalCost.IsZero() || !totals.TotalValue.IsZero() {
		t.Errorf("empty portfolio should have zero totals: %+v", totals)
	}
	if !totals.TotalGainLossPercent.IsZero() {
		t.Errorf("gain/loss pct must be 0 when cost is 0, got %s", totals.TotalGainLossPercent)
	}
}

func TestSimulatePriceTick_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	holdings := []models.StockHolding{
		{ID: "h1", CurrentPrice: dec(780)},
		{ID: "h2", CurrentPrice: dec(185)},
		{ID: "h3", CurrentPrice: decimal.NewFromFloat(0.37)},
	}

	for i := 0; i < 500; i++ {
		ticked := SimulatePriceTick(holdings, rng)
		for j := range ticked {
			old := holdings[j].CurrentPrice
			lo := old.Mul(decimal.NewFromFloat(0.95)).Round(2)
			hi := old.Mul(decimal.NewFromFloat(1.05)).Round(2)
			p := ticked[j].CurrentPrice
			if p.LessThan(lo) || p.GreaterThan(hi) {
				t.Fatalf("tick %d holding %s: price %s outside [%s, %s]", i, ticked[j].ID, p, lo, hi)
			}
			if !p.Equal(p.Round(2)) {
				t.Fatalf("price %s not rounded to two decimals", p)
			}
		}
	}
}

func TestSimulatePriceTick_DoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	holdings := []models.StockHolding{{ID: "h1", CurrentPrice: dec(100)}}

	SimulatePriceTick(holdings, rng)

	if !holdings[0].CurrentPrice.Equal(dec(100)) {
		t.Errorf("input holdings mutated: %s", holdings[0].CurrentPrice)
	}
}

func TestSimulatePriceTick_IndependentDraws(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	holdings := []models.StockHolding{
		{ID: "h1", CurrentPrice: dec(1000)},
		{ID: "h2", CurrentPrice: dec(1000)},
	}

	// Identical start prices should diverge across enough ticks if draws
	// are independent per holding.
	diverged := false
	for i := 0; i < 50 && !diverged; i++ {
		ticked := SimulatePriceTick(holdings, rng)
		diverged = !ticked[0].CurrentPrice.Equal(ticked[1].CurrentPrice)
	}
	if !diverged {
		t.Error("holdings never diverged; draws do not look independent")
	}
}

func TestNewHolding(t *testing.T) {
	h, err := NewHolding(HoldingInput{
		Symbol:  " aapl ",
		Shares:  decimal.NewFromFloat(2.5),
		AvgCost: dec(150),
		Market:  "NASDAQ",
	})
	if err != nil {
		t.Fatalf("NewHolding: %v", err)
	}

	if h.Symbol != "AAPL" {
		t.Errorf("symbol should be trimmed and uppercased, got %q", h.Symbol)
	}
	if h.Name != "AAPL" {
		t.Errorf("name should default to symbol, got %q", h.Name)
	}
	if !h.CurrentPrice.Equal(h.AvgCost) {
		t.Errorf("new holding must start at breakeven: price %s, cost %s", h.CurrentPrice, h.AvgCost)
	}
	if h.ID == "" {
		t.Error("expected a fresh identifier")
	}
}

func TestNewHolding_Validation(t *testing.T) {
	cases := []struct {
		name  string
		input HoldingInput
	}{
		{"missing symbol", HoldingInput{Shares: dec(1), AvgCost: dec(1)}},
		{"zero shares", HoldingInput{Symbol: "AAPL", Shares: decimal.Zero, AvgCost: dec(1)}},
		{"negative shares", HoldingInput{Symbol: "AAPL", Shares: dec(-1), AvgCost: dec(1)}},
		{"zero cost", HoldingInput{Symbol: "AAPL", Shares: dec(1), AvgCost: decimal.Zero}},
		{"negative cost", HoldingInput{Symbol: "AAPL", Shares: dec(1), AvgCost: dec(-5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHolding(tc.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
