package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

var codeFence = regexp.MustCompile("(?s)```[^\\n]*\\n(.*?)\\n?```")

// New builds the generator selected by the profile
func New(ctx context.Context, cfg config.TextGenConfig, secrets config.Secrets) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if secrets.OpenAIAPIKey == "" {
			return nil, &utils.ValidationError{Field: "OPENAI_API_KEY", Message: "environment variable is not set"}
		}
		return NewOpenAIGenerator(secrets.OpenAIAPIKey, cfg.Model, ""), nil
	case "gemini", "":
		if secrets.GeminiAPIKey == "" {
			return nil, &utils.ValidationError{Field: "GEMINI_API_KEY", Message: "environment variable is not set"}
		}
		return NewGeminiGenerator(ctx, secrets.GeminiAPIKey, cfg.Model, "")
	default:
		return nil, &utils.ValidationError{Field: "textgen.provider", Message: fmt.Sprintf("unsupported provider %q", cfg.Provider)}
	}
}

// StripFences removes markdown code fences the models like to wrap JSON in
func StripFences(reply string) string {
	if match := codeFence.FindStringSubmatch(reply); match != nil {
		return strings.TrimSpace(match[1])
	}
	reply = strings.ReplaceAll(reply, "```json", "")
	reply = strings.ReplaceAll(reply, "```", "")
	return strings.TrimSpace(reply)
}

// DecodeJSON strips fences from a reply and unmarshals it into v.
// A reply that is not valid JSON is reported as a ValidationError.
func DecodeJSON(reply string, v interface{}) error {
	text := StripFences(reply)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &utils.ValidationError{
			Field:   "reply",
			Message: fmt.Sprintf("not valid JSON: %.300s", text),
			Err:     err,
		}
	}
	return nil
}
