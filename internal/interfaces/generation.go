package interfaces

import "context"

// GenerateOptions carries per-request generation parameters. Zero values fall
// back to the provider's configured defaults.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// GenerationService produces text from a prompt via the configured LLM
// provider. Implementations do not retry: a failed call returns the error and
// the caller decides how to degrade.
type GenerationService interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
