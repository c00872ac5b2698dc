package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// Request describes one video to build
type Request struct {
	Title     string
	Narration string
	ClipURLs  []string
	Output    string
}

// Result describes the built video and every fallback taken on the way
type Result struct {
	Path      string
	Duration  float64
	Clips     []ClipOutcome
	Timeline  Timeline
	Music     MusicTrack
	Overlay   OverlayResult
	BuildTime time.Duration
}

// Assembler turns a script and clip links into a finished portrait video
type Assembler struct {
	cfg     config.AssemblyConfig
	fetch   FetchFunc
	tempDir string
}

// New creates an assembler. Intermediates go below os.TempDir().
func New(cfg config.AssemblyConfig) *Assembler {
	return &Assembler{cfg: cfg, fetch: Fetch}
}

// Assemble builds req.Output. All intermediates live in one temporary
// directory that is removed on success and on failure.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(req.Output), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.MkdirTemp(a.tempDir, "dailyshorts-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			utils.LogWarning("Failed to remove temp directory %s: %v", tmp, err)
		}
	}()

	voice := filepath.Join(tmp, "voice.mp3")
	rawVideo := filepath.Join(tmp, "raw.mp4")
	assembled := filepath.Join(tmp, "assembled.mp4")
	playlist := filepath.Join(tmp, "concat.txt")

	utils.LogVerbose("Synthesizing narration with %s", a.cfg.Voice)
	if err := Synthesize(ctx, req.Narration, a.cfg.Voice, voice); err != nil {
		return nil, fmt.Errorf("narration failed: %w", err)
	}
	duration := NarrationDuration(ctx, voice)
	utils.LogVerbose("Narration length: %.1fs", duration)

	result := &Result{Path: req.Output, Duration: duration}

	utils.LogVerbose("Downloading %d clips", min(len(req.ClipURLs), maxClips))
	result.Clips = prepareClips(ctx, a.fetch, req.ClipURLs, tmp, a.cfg.FetchTimeout)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	paths := survivingClips(result.Clips)
	if len(paths) == 0 {
		return nil, utils.ErrNoClips
	}

	probed, err := probeClips(ctx, paths)
	if err != nil {
		return nil, err
	}
	timeline, err := BuildTimeline(probed, duration)
	if err != nil {
		return nil, err
	}
	result.Timeline = timeline
	utils.LogVerbose("Timeline: %d entries, %.1fs", len(timeline.Entries), timeline.Total)

	if err := WritePlaylist(playlist, timeline); err != nil {
		return nil, err
	}
	if err := ConcatTimeline(ctx, playlist, rawVideo, duration); err != nil {
		return nil, fmt.Errorf("concat failed: %w", err)
	}

	music, err := ResolveMusic(ctx, a.fetch, a.cfg.MusicURL, tmp, a.cfg.MusicTimeout)
	if err != nil {
		return nil, err
	}
	result.Music = music

	if err := MixAudio(ctx, rawVideo, voice, music, assembled, duration, a.cfg.MusicVolume); err != nil {
		return nil, fmt.Errorf("audio mix failed: %w", err)
	}

	overlay, err := RenderOverlay(ctx, assembled, req.Output, req.Title, a.cfg.Font)
	if err != nil {
		return nil, err
	}
	result.Overlay = overlay
	result.BuildTime = time.Since(start)

	return result, nil
}
