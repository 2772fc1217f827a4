package llm

import "context"

// CompletionOptions bound a single completion request.
type CompletionOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// CompletionService is the text-completion oracle boundary. Implementations
// own transport, timeouts and model selection; callers own parsing.
type CompletionService interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}
