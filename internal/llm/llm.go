package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation provider used for résumé insights.
type Client interface {
	GenerateInsights(ctx context.Context, input InsightsInput) (string, error)
}

// InsightsInput carries the document and profile context for one analysis.
// Exactly one of PDFBase64 or Transcript is set, depending on the configured
// analysis input mode.
type InsightsInput struct {
	PDFBase64      string
	Transcript     string
	ProfileContext string
}

// ErrUpstream marks a non-success response from the text-generation
// endpoint. Callers must not retry: model calls are paid.
var ErrUpstream = errors.New("upstream error")

// Placeholder stands in when no gateway credentials are configured, so the
// rest of the API stays usable in local development.
type Placeholder struct{}

func (Placeholder) GenerateInsights(ctx context.Context, input InsightsInput) (string, error) {
	_ = ctx
	_ = input
	return "", errors.New("ai gateway not configured")
}
