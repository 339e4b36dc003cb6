package driven

import "context"

// GenerateOptions controls text generation.
type GenerateOptions struct {
	// MaxTokens limits the response length. 0 uses the provider default.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64
}

// LLMService provides text generation for the terminal pipeline steps
// (the research answer and the closing poem).
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
