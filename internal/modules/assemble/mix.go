package assemble

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

const (
	// silenceSeconds is the length of the generated fallback music bed
	silenceSeconds = 300
	// fadeOutLength is the music fade at the end of the narration
	fadeOutLength = 2.0
)

// MusicSource tells where the background music came from
type MusicSource string

const (
	MusicDownloaded MusicSource = "downloaded"
	MusicSilence    MusicSource = "silence"
)

// MusicTrack is the background music used in the mix
type MusicTrack struct {
	Path   string
	Source MusicSource
}

// SilenceArgs generates a silent stereo track
func SilenceArgs(out string) []string {
	return []string{
		"-y", "-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=stereo",
		"-t", fmt.Sprint(silenceSeconds),
		out,
	}
}

// ResolveMusic downloads the music bed and falls back to generated silence.
// Only a failure to generate the silence is returned.
func ResolveMusic(ctx context.Context, fetch FetchFunc, url, dir string, timeout time.Duration) (MusicTrack, error) {
	path := filepath.Join(dir, "music.mp3")

	if url != "" {
		err := fetch(ctx, url, path, timeout)
		if err == nil {
			return MusicTrack{Path: path, Source: MusicDownloaded}, nil
		}
		if ctx.Err() != nil {
			return MusicTrack{}, ctx.Err()
		}
		utils.LogWarning("Background music unavailable, using silence: %v", err)
	}

	if _, err := runTool(ctx, "ffmpeg", SilenceArgs(path)...); err != nil {
		return MusicTrack{}, fmt.Errorf("failed to generate silence: %w", err)
	}
	return MusicTrack{Path: path, Source: MusicSilence}, nil
}

// FadeOutStart is where the music fade begins, never before 0
func FadeOutStart(narration float64) float64 {
	return math.Max(0, narration-fadeOutLength)
}

// MixFilter keeps the narration at full volume and lays the faded music under it
func MixFilter(narration, musicVolume float64) string {
	return fmt.Sprintf(
		"[1:a]volume=1.0[v];"+
			"[2:a]volume=%s,afade=t=in:st=0:d=1.5,afade=t=out:st=%s:d=2[m];"+
			"[v][m]amix=inputs=2:duration=first[aout]",
		seconds(musicVolume), seconds(FadeOutStart(narration)))
}

// MixArgs muxes the silent video with the mixed narration and music
func MixArgs(video, voice, music, out string, narration, musicVolume float64) []string {
	return []string{
		"-y",
		"-i", video, "-i", voice, "-i", music,
		"-filter_complex", MixFilter(narration, musicVolume),
		"-map", "0:v", "-map", "[aout]",
		"-t", seconds(narration),
		"-c:v", "copy", "-c:a", "aac", "-b:a", "192k",
		out,
	}
}

// MixAudio renders the assembled video
func MixAudio(ctx context.Context, video, voice string, music MusicTrack, out string, narration, musicVolume float64) error {
	_, err := runTool(ctx, "ffmpeg", MixArgs(video, voice, music.Path, out, narration, musicVolume)...)
	return err
}
