package textgen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"google.golang.org/genai"
)

// GeminiGenerator talks to the Gemini API through the genai SDK
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client. baseURL is only set in tests.
func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string) (*GeminiGenerator, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
		cfg.HTTPClient = http.DefaultClient
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate sends one prompt and returns the concatenated text of the first candidate
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxTokens,
	}

	utils.LogDebug("Gemini request: model=%s temperature=%.2f maxTokens=%d", g.model, opts.Temperature, opts.MaxTokens)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", &utils.ExternalCallError{Service: "gemini", Err: err}
	}

	text := result.Text()
	if text == "" {
		return "", &utils.ExternalCallError{Service: "gemini", Err: fmt.Errorf("empty response")}
	}
	return text, nil
}
