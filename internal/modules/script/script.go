package script

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/modules/topics"
	"github.com/gnzdotmx/dailyshorts/internal/services/textgen"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// requiredKeys must be present in every script reply
var requiredKeys = []string{"titel", "skript", "beschreibung", "tags", "suchbegriffe"}

// Script is the complete text package for one video
type Script struct {
	Title       string   `json:"titel" yaml:"title"`
	Narration   string   `json:"skript" yaml:"narration"`
	Description string   `json:"beschreibung" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	SearchTerms []string `json:"suchbegriffe" yaml:"searchTerms"`
}

// Module expands a topic into a script
type Module struct {
	generator textgen.Generator
	prompt    *template.Template
	opts      textgen.Options
}

// New creates a script module from the text generation profile
func New(generator textgen.Generator, cfg config.TextGenConfig) (*Module, error) {
	prompt, err := template.New("script").Parse(cfg.ScriptPrompt)
	if err != nil {
		return nil, &utils.ValidationError{Field: "textgen.scriptPrompt", Message: "invalid template", Err: err}
	}
	return &Module{
		generator: generator,
		prompt:    prompt,
		opts: textgen.Options{
			Temperature: cfg.ScriptTemperature,
			MaxTokens:   cfg.ScriptMaxTokens,
		},
	}, nil
}

// Generate asks for the script of one topic and validates the reply
func (m *Module) Generate(ctx context.Context, topic topics.Topic) (*Script, error) {
	var buf bytes.Buffer
	if err := m.prompt.Execute(&buf, topic); err != nil {
		return nil, fmt.Errorf("failed to render script prompt: %w", err)
	}

	reply, err := m.generator.Generate(ctx, buf.String(), m.opts)
	if err != nil {
		return nil, fmt.Errorf("script generation failed: %w", err)
	}

	var raw map[string]interface{}
	if err := textgen.DecodeJSON(reply, &raw); err != nil {
		return nil, err
	}
	if err := utils.RequireKeys(raw, requiredKeys...); err != nil {
		return nil, err
	}

	var s Script
	if err := textgen.DecodeJSON(reply, &s); err != nil {
		return nil, err
	}

	if strings.TrimSpace(s.Title) == "" {
		return nil, &utils.ValidationError{Field: "titel", Message: "empty title"}
	}
	if strings.TrimSpace(s.Narration) == "" {
		return nil, &utils.ValidationError{Field: "skript", Message: "empty narration"}
	}

	return &s, nil
}
