package assemble

import (
	"context"
)

// DefaultVoice is the narration voice used when none is configured
const DefaultVoice = "de-DE-KillianNeural"

// Synthesize renders the narration to an audio file with edge-tts
func Synthesize(ctx context.Context, text, voice, out string) error {
	if voice == "" {
		voice = DefaultVoice
	}
	_, err := runTool(ctx, "edge-tts", "--voice", voice, "--text", text, "--write-media", out)
	return err
}
