package interfaces

import (
	"context"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

// GeminiClient generates text from prompts. Implementations may fail;
// graceful degradation to fallback values is the advisor service's job,
// not the client's.
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	Close() error
}

// AdvisorService is the advisory capability exposed to handlers. Both
// operations degrade to fixed fallback values when the underlying
// service is unreachable or unconfigured; they never return an error.
type AdvisorService interface {
	// AnalyzeFinances returns free-text commentary on a snapshot of the
	// aggregate.
	AnalyzeFinances(ctx context.Context, snapshot *models.Aggregate) string

	// SuggestCategory proposes a transaction category for a free-text
	// description, restricted to the suggested category set.
	SuggestCategory(ctx context.Context, description string) string
}
