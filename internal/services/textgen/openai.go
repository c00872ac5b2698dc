package textgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator talks to the OpenAI chat completion API
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates an OpenAI client. baseURL is only set in tests.
func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends one user message and returns the content of the first choice
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	utils.LogDebug("OpenAI request: model=%s temperature=%.2f maxTokens=%d", g.model, opts.Temperature, opts.MaxTokens)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: opts.Temperature,
		MaxTokens:   int(opts.MaxTokens),
	})
	if err != nil {
		callErr := &utils.ExternalCallError{Service: "openai", Err: err}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			callErr.StatusCode = apiErr.HTTPStatusCode
		}
		return "", callErr
	}

	if len(resp.Choices) == 0 {
		return "", &utils.ExternalCallError{Service: "openai", Err: fmt.Errorf("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}
