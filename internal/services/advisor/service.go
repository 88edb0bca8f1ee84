// Package advisor provides AI-generated financial commentary backed by
// Gemini, degrading to fixed fallback messages when the model is
// unavailable.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/valuation"
)

// Compile-time interface check
var _ interfaces.AdvisorService = (*Service)(nil)

// Fallback messages. Advisory output is decorative: callers always get
// a usable string, never an error.
const (
	FallbackNoKey       = "Set a Gemini API key to enable the AI advisor."
	FallbackEmpty       = "Could not generate advice right now. Please try again later."
	FallbackUnavailable = "The AI advisor is temporarily unavailable. Check your connection or API key."
)

// Service implements AdvisorService
type Service struct {
	client  interfaces.GeminiClient
	limiter *rate.Limiter
	timeout time.Duration
	logger  *common.Logger
}

// NewService creates a new advisor service. client may be nil when no
// API key is configured; every operation then returns its fallback.
func NewService(client interfaces.GeminiClient, config *common.Config, logger *common.Logger) *Service {
	rpm := config.Advisor.RateLimit
	if rpm <= 0 {
		rpm = 10
	}
	return &Service{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		timeout: config.Advisor.GetTimeout(),
		logger:  logger,
	}
}

// snapshotSummary is the condensed view sent to the model. Full
// transaction history would blow the token budget, so only balances,
// portfolio value, top holdings and recent activity go out.
type snapshotSummary struct {
	TotalCash          string               `json:"total_cash"`
	Accounts           []accountSummary     `json:"accounts"`
	PortfolioValue     string               `json:"portfolio_value"`
	TopHoldings        []string             `json:"top_holdings"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

type accountSummary struct {
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

func buildSummary(snapshot *models.Aggregate) snapshotSummary {
	summary := snapshotSummary{}

	total := valuation.ComputePortfolioTotals(snapshot.Stocks)
	summary.PortfolioValue = total.TotalValue.String()

	totalCash := decimal.Zero
	for _, acc := range snapshot.Accounts {
		totalCash = totalCash.Add(acc.Balance)
		summary.Accounts = append(summary.Accounts, accountSummary{Name: acc.Name, Balance: acc.Balance.String()})
	}
	summary.TotalCash = totalCash.String()

	for i, st := range snapshot.Stocks {
		if i >= 5 {
			break
		}
		summary.TopHoldings = append(summary.TopHoldings, st.Symbol)
	}

	txs := snapshot.Transactions
	if len(txs) > 10 {
		txs = txs[:10]
	}
	summary.RecentTransactions = txs

	return summary
}

func buildAnalysisPrompt(snapshot *models.Aggregate) string {
	summary := buildSummary(snapshot)
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		data = []byte("{}")
	}

	return fmt.Sprintf(`Act as my personal financial advisor. Based on the following summary of my finances, provide a short financial health check and recommendations.

Summary:
%s

Please include:
1. Asset allocation analysis (cash vs investments).
2. Observations on recent spending patterns, if any.
3. Brief suggestions on current stock holdings, based on general investment principles.

Keep the tone professional but friendly.`, data)
}

// AnalyzeFinances returns commentary for the snapshot. Failures of any
// kind produce a fallback string.
func (s *Service) AnalyzeFinances(ctx context.Context, snapshot *models.Aggregate) string {
	if s.client == nil {
		return FallbackNoKey
	}
	// Non-blocking: a rate-limited caller degrades to the fallback
	// instead of holding the request open until a token refills.
	if !s.limiter.Allow() {
		s.logger.Warn().Msg("Financial analysis rate limited")
		return FallbackUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.client.GenerateContent(ctx, buildAnalysisPrompt(snapshot))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Financial analysis failed")
		return FallbackUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}
	return text
}

// SuggestCategory proposes a category for a transaction description.
// The answer is clamped to the known category set.
func (s *Service) SuggestCategory(ctx context.Context, description string) string {
	if s.client == nil {
		return models.CategoryFallback
	}
	if !s.limiter.Allow() {
		s.logger.Warn().Str("description", description).Msg("Category suggestion rate limited")
		return models.CategoryFallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Based on the description %q, pick the most suitable category from this list: [%s]. Return only the category name, with no other text.`,
		description, strings.Join(models.Categories, ", "))

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("description", description).Msg("Category suggestion failed")
		return models.CategoryFallback
	}
	return models.NormalizeCategory(strings.TrimSpace(text))
}
