package topics

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/services/textgen"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// Topic is one video idea
type Topic struct {
	Subject  string `json:"thema" yaml:"subject"`
	Category string `json:"bereich" yaml:"category"`
	Angle    string `json:"winkel" yaml:"angle"`
	Hook     string `json:"hook" yaml:"hook"`
}

// promptData feeds the topic prompt template
type promptData struct {
	Date   string
	Count  int
	Recent []string
}

// Module asks the text generator for the day's topics
type Module struct {
	generator textgen.Generator
	prompt    *template.Template
	opts      textgen.Options
	now       func() time.Time
}

// New creates a topic module from the text generation profile
func New(generator textgen.Generator, cfg config.TextGenConfig) (*Module, error) {
	prompt, err := template.New("topics").Parse(cfg.TopicPrompt)
	if err != nil {
		return nil, &utils.ValidationError{Field: "textgen.topicPrompt", Message: "invalid template", Err: err}
	}
	return &Module{
		generator: generator,
		prompt:    prompt,
		opts: textgen.Options{
			Temperature: cfg.TopicTemperature,
			MaxTokens:   cfg.TopicMaxTokens,
		},
		now: time.Now,
	}, nil
}

// Prompt renders the prompt sent for n topics
func (m *Module) Prompt(n int, recent []string) (string, error) {
	var buf bytes.Buffer
	data := promptData{
		Date:   m.now().Format("Monday, 02. January 2006"),
		Count:  n,
		Recent: recent,
	}
	if err := m.prompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render topic prompt: %w", err)
	}
	return buf.String(), nil
}

// Generate returns exactly n topics. recent lists subjects published lately
// so the model can steer away from them.
func (m *Module) Generate(ctx context.Context, n int, recent []string) ([]Topic, error) {
	prompt, err := m.Prompt(n, recent)
	if err != nil {
		return nil, err
	}

	reply, err := m.generator.Generate(ctx, prompt, m.opts)
	if err != nil {
		return nil, fmt.Errorf("topic generation failed: %w", err)
	}

	var topics []Topic
	if err := textgen.DecodeJSON(reply, &topics); err != nil {
		return nil, err
	}

	if len(topics) < n {
		return nil, &utils.ValidationError{
			Field:   "topics",
			Message: fmt.Sprintf("expected %d topics, got %d", n, len(topics)),
		}
	}
	topics = topics[:n]

	for i, topic := range topics {
		if strings.TrimSpace(topic.Subject) == "" {
			return nil, &utils.ValidationError{
				Field:   "thema",
				Message: fmt.Sprintf("topic %d has no subject", i+1),
			}
		}
	}

	return topics, nil
}
