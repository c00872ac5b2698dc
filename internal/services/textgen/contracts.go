package textgen

import (
	"context"
)

// Options tunes a single generation request
type Options struct {
	Temperature float32
	MaxTokens   int32
}

// Generator sends a prompt to a generative-text service and returns the raw reply
type Generator interface {
	// Generate returns the model's text reply for a single user prompt
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Ensure both providers implement Generator
var (
	_ Generator = (*GeminiGenerator)(nil)
	_ Generator = (*OpenAIGenerator)(nil)
)
