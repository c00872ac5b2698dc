package config

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"gopkg.in/yaml.v3"
)

// Config is the channel profile driving one pipeline run
type Config struct {
	VideosPerRun int            `yaml:"videosPerRun"`
	TextGen      TextGenConfig  `yaml:"textgen"`
	Clips        ClipsConfig    `yaml:"clips"`
	Assembly     AssemblyConfig `yaml:"assembly"`
	Upload       UploadConfig   `yaml:"upload"`
	Pipeline     PipelineConfig `yaml:"pipeline"`
	History      HistoryConfig  `yaml:"history"`
	Metrics      MetricsConfig  `yaml:"metrics"`
}

// TextGenConfig selects the generative-text provider and its prompts
type TextGenConfig struct {
	Provider          string        `yaml:"provider"`
	Model             string        `yaml:"model"`
	Timeout           time.Duration `yaml:"timeout"`
	TopicTemperature  float32       `yaml:"topicTemperature"`
	TopicMaxTokens    int32         `yaml:"topicMaxTokens"`
	ScriptTemperature float32       `yaml:"scriptTemperature"`
	ScriptMaxTokens   int32         `yaml:"scriptMaxTokens"`
	TopicPrompt       string        `yaml:"topicPrompt"`
	ScriptPrompt      string        `yaml:"scriptPrompt"`
}

// ClipsConfig controls the stock clip search
type ClipsConfig struct {
	BaseURL  string        `yaml:"baseURL"`
	PerPage  int           `yaml:"perPage"`
	MaxTerms int           `yaml:"maxTerms"`
	MaxClips int           `yaml:"maxClips"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AssemblyConfig controls narration, music and rendering
type AssemblyConfig struct {
	Voice        string        `yaml:"voice"`
	MusicURL     string        `yaml:"musicURL"`
	MusicVolume  float64       `yaml:"musicVolume"`
	MusicTimeout time.Duration `yaml:"musicTimeout"`
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
	Font         string        `yaml:"font"`
}

// UploadConfig holds the publishing metadata defaults
type UploadConfig struct {
	CategoryID      string        `yaml:"categoryId"`
	Privacy         string        `yaml:"privacy"`
	Language        string        `yaml:"language"`
	BaseTags        []string      `yaml:"baseTags"`
	DescriptionTags int           `yaml:"descriptionTags"`
	RetryDelay      time.Duration `yaml:"retryDelay"`
}

// PipelineConfig controls the orchestrator
type PipelineConfig struct {
	OutputDir  string        `yaml:"outputDir"`
	LogDir     string        `yaml:"logDir"`
	Delay      time.Duration `yaml:"delay"`
	RecentDays int           `yaml:"recentDays"`
}

// HistoryConfig locates the published-video store
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig configures the optional push of run metrics
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL"`
	Job            string `yaml:"job"`
}

// Secrets are read from the environment only
type Secrets struct {
	GeminiAPIKey  string
	OpenAIAPIKey  string
	PexelsAPIKey  string
	YouTubeToken  string
	YouTubeClient string
}

const defaultTopicPrompt = `Du bist Redakteur eines deutschen YouTube-Shorts-Kanals für Wissen & Fakten.

Heutiges Datum: {{.Date}}

Erstelle GENAU {{.Count}} Video-Themen für heute. Die Themen müssen:
- Aus VERSCHIEDENEN Bereichen stammen (nie 2x dasselbe Genre)
- Fesselnd und alltagsnah sein
- Für ein 60-Sekunden-Video geeignet sein
{{- if .Recent}}
- Sich von diesen kürzlich veröffentlichten Themen unterscheiden:
{{- range .Recent}}
  * {{.}}
{{- end}}
{{- end}}

Bereiche (rotiere täglich): Wissenschaft, Geschichte, Psychologie, Natur & Tiere,
Medizin & Körper, Weltrekorde, Alltags-Geheimnisse, Technologie, Geografie,
Kurioses, Essen & Chemie, Kriminalgeschichte, Architektur, Tiefsee, Astronomie

Antworte NUR als reines JSON-Array ohne Markdown:
[
  {
    "thema": "Konkretes faszinierendes Thema",
    "bereich": "z.B. Psychologie",
    "winkel": "Welcher Aspekt beleuchtet wird",
    "hook": "Eröffnungssatz der sofort neugierig macht (max 15 Wörter)"
  }
]`

const defaultScriptPrompt = `Du bist ein professioneller Texter für virale YouTube Shorts auf Deutsch.

Thema: {{.Subject}}
Bereich: {{.Category}}
Winkel: {{.Angle}}
Einstieg: {{.Hook}}

Schreibe ein komplettes Video-Paket. Antworte NUR als reines JSON-Objekt ohne Markdown:
{
  "titel": "Klickstarker Titel max 60 Zeichen (mit Zahl oder Frage wenn möglich)",
  "skript": "Vollständiges Sprecherskript für genau 60 Sekunden. Ca. 150 Wörter. Beginnt mit dem Hook. Lebhaft, Pausen eingebaut mit '...', kein Fachjargon. Endet mit einer Frage an die Zuschauer.",
  "beschreibung": "YouTube-Beschreibung ca. 100 Wörter mit Keywords. Endet mit Handlungsaufforderung.",
  "tags": ["tag1","tag2","tag3","tag4","tag5","tag6","tag7","tag8"],
  "suchbegriffe": ["englischer Pexels-Begriff 1","englischer Pexels-Begriff 2","englischer Pexels-Begriff 3"]
}`

// Default returns the profile used when no file is given
func Default() *Config {
	return &Config{
		VideosPerRun: 3,
		TextGen: TextGenConfig{
			Provider:          "gemini",
			Model:             "gemini-2.0-flash",
			Timeout:           30 * time.Second,
			TopicTemperature:  0.9,
			TopicMaxTokens:    1024,
			ScriptTemperature: 0.8,
			ScriptMaxTokens:   2048,
			TopicPrompt:       defaultTopicPrompt,
			ScriptPrompt:      defaultScriptPrompt,
		},
		Clips: ClipsConfig{
			BaseURL:  "https://api.pexels.com",
			PerPage:  5,
			MaxTerms: 3,
			MaxClips: 4,
			Timeout:  15 * time.Second,
		},
		Assembly: AssemblyConfig{
			Voice:        "de-DE-KillianNeural",
			MusicURL:     "https://cdn.pixabay.com/audio/2024/01/08/audio_8efc1aa6e6.mp3",
			MusicVolume:  0.07,
			MusicTimeout: 20 * time.Second,
			FetchTimeout: 60 * time.Second,
			Font:         "DejaVu-Sans-Bold",
		},
		Upload: UploadConfig{
			CategoryID:      "27",
			Privacy:         "public",
			Language:        "de",
			BaseTags:        []string{"#Shorts", "Wissen", "Fakten", "Lernen", "Bildung", "WusstetIhr", "Wissenschaft"},
			DescriptionTags: 4,
			RetryDelay:      5 * time.Second,
		},
		Pipeline: PipelineConfig{
			OutputDir:  "output",
			LogDir:     "logs",
			Delay:      10 * time.Second,
			RecentDays: 14,
		},
		History: HistoryConfig{
			Path: "dailyshorts.db",
		},
		Metrics: MetricsConfig{
			Job: "dailyshorts",
		},
	}
}

// Load reads a YAML profile on top of the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		expanded, err := utils.ExpandHomeDir(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &utils.ValidationError{Field: "config", Message: "invalid YAML", Err: err}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the profile for values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.VideosPerRun < 1 {
		return &utils.ValidationError{Field: "videosPerRun", Message: "must be at least 1"}
	}

	switch strings.ToLower(c.TextGen.Provider) {
	case "gemini", "openai":
	default:
		return &utils.ValidationError{
			Field:   "textgen.provider",
			Message: fmt.Sprintf("unsupported provider %q (gemini or openai)", c.TextGen.Provider),
		}
	}

	for field, text := range map[string]string{
		"textgen.topicPrompt":  c.TextGen.TopicPrompt,
		"textgen.scriptPrompt": c.TextGen.ScriptPrompt,
	} {
		if _, err := template.New(field).Parse(text); err != nil {
			return &utils.ValidationError{Field: field, Message: "invalid template", Err: err}
		}
	}

	if c.Clips.MaxClips < 1 || c.Clips.MaxTerms < 1 {
		return &utils.ValidationError{Field: "clips", Message: "maxClips and maxTerms must be at least 1"}
	}
	if c.Assembly.MusicVolume < 0 {
		return &utils.ValidationError{Field: "assembly.musicVolume", Message: "must not be negative"}
	}
	if c.Upload.DescriptionTags < 0 {
		return &utils.ValidationError{Field: "upload.descriptionTags", Message: "must not be negative"}
	}
	if c.Pipeline.Delay < 0 {
		return &utils.ValidationError{Field: "pipeline.delay", Message: "must not be negative"}
	}

	switch c.Upload.Privacy {
	case "public", "unlisted", "private":
	default:
		return &utils.ValidationError{Field: "upload.privacy", Message: fmt.Sprintf("unsupported privacy status %q", c.Upload.Privacy)}
	}

	return nil
}

// LoadSecrets reads API keys and credentials from the environment
func LoadSecrets() Secrets {
	return Secrets{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		PexelsAPIKey:  os.Getenv("PEXELS_API_KEY"),
		YouTubeToken:  os.Getenv("YOUTUBE_TOKEN"),
		YouTubeClient: os.Getenv("YOUTUBE_CLIENT"),
	}
}

// RequiredEnv lists the environment variables a run with this profile needs
func (c *Config) RequiredEnv(dryRun bool) []string {
	vars := []string{"PEXELS_API_KEY"}
	if strings.EqualFold(c.TextGen.Provider, "openai") {
		vars = append(vars, "OPENAI_API_KEY")
	} else {
		vars = append(vars, "GEMINI_API_KEY")
	}
	if !dryRun {
		vars = append(vars, "YOUTUBE_TOKEN", "YOUTUBE_CLIENT")
	}
	return vars
}
