package topics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/services/textgen"
	"github.com/gnzdotmx/dailyshorts/internal/services/textgen/mocks"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const threeTopics = "```json\n" + `[
  {"thema":"Leuchtende Tiefseefische","bereich":"Tiefsee","winkel":"Biolumineszenz","hook":"Im Dunkeln leuchten sie."},
  {"thema":"Der kürzeste Krieg","bereich":"Geschichte","winkel":"38 Minuten","hook":"Ein Krieg vor dem Frühstück."},
  {"thema":"Warum Zwiebeln Tränen machen","bereich":"Essen & Chemie","winkel":"Schwefel","hook":"Es ist Chemie."},
  {"thema":"Extra","bereich":"Kurioses","winkel":"x","hook":"y"}
]` + "\n```"

func newTestModule(t *testing.T, gen textgen.Generator) *Module {
	t.Helper()
	m, err := New(gen, config.Default().TextGen)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC) }
	return m
}

func TestGenerate(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	gen.EXPECT().Generate(
		mock.Anything,
		mock.MatchedBy(func(prompt string) bool {
			return assert.Contains(t, prompt, "Saturday, 14. March 2026") &&
				assert.Contains(t, prompt, "GENAU 3") &&
				assert.Contains(t, prompt, "Die Große Mauer")
		}),
		textgen.Options{Temperature: 0.9, MaxTokens: 1024},
	).Return(threeTopics, nil)

	m := newTestModule(t, gen)
	topics, err := m.Generate(context.Background(), 3, []string{"Die Große Mauer"})
	require.NoError(t, err)

	require.Len(t, topics, 3)
	assert.Equal(t, "Leuchtende Tiefseefische", topics[0].Subject)
	assert.Equal(t, "Geschichte", topics[1].Category)
	assert.Equal(t, "Schwefel", topics[2].Angle)
}

func TestPromptWithoutRecent(t *testing.T) {
	m := newTestModule(t, mocks.NewMockGenerator(t))
	prompt, err := m.Prompt(2, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "GENAU 2")
	assert.NotContains(t, prompt, "kürzlich veröffentlichten")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		replyErr  error
		wantValid bool
	}{
		{"too few", `[{"thema":"a"}]`, nil, true},
		{"not json", "Hier sind Themen", nil, true},
		{"empty subject", `[{"thema":""},{"thema":"b"},{"thema":"c"}]`, nil, true},
		{"service error", "", errors.New("quota"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := mocks.NewMockGenerator(t)
			gen.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return(tt.reply, tt.replyErr)

			_, err := newTestModule(t, gen).Generate(context.Background(), 3, nil)
			require.Error(t, err)

			var validationErr *utils.ValidationError
			assert.Equal(t, tt.wantValid, errors.As(err, &validationErr))
		})
	}
}
