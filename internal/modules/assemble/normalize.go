package assemble

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

const (
	// Width and Height of every rendered video
	Width  = 1080
	Height = 1920
	// maxClips bounds how many clip URLs are downloaded per video
	maxClips = 4
)

// ClipOutcome reports what happened to one clip URL
type ClipOutcome struct {
	Index int
	URL   string
	Path  string
	Err   error
}

// NormalizeArgs scales and crops a clip to a silent 1080x1920 30fps H.264 file
func NormalizeArgs(raw, out string) []string {
	vf := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,setsar=1,fps=30",
		Width, Height, Width, Height)
	return []string{
		"-y", "-i", raw,
		"-vf", vf,
		"-c:v", "libx264", "-preset", "fast", "-crf", "24",
		"-an", out,
	}
}

// NormalizeClip re-encodes a downloaded clip for concatenation
func NormalizeClip(ctx context.Context, raw, out string) error {
	_, err := runTool(ctx, "ffmpeg", NormalizeArgs(raw, out)...)
	return err
}

// prepareClips downloads and normalizes at most the first four clips.
// A failing clip is logged and reported in its outcome.
func prepareClips(ctx context.Context, fetch FetchFunc, urls []string, dir string, timeout time.Duration) []ClipOutcome {
	if len(urls) > maxClips {
		urls = urls[:maxClips]
	}

	outcomes := make([]ClipOutcome, 0, len(urls))
	for i, url := range urls {
		outcome := ClipOutcome{Index: i, URL: url}
		raw := filepath.Join(dir, fmt.Sprintf("raw_%d.mp4", i))
		normalized := filepath.Join(dir, fmt.Sprintf("sc_%d.mp4", i))

		if err := fetch(ctx, url, raw, timeout); err != nil {
			outcome.Err = err
		} else if err := NormalizeClip(ctx, raw, normalized); err != nil {
			outcome.Err = err
		} else {
			outcome.Path = normalized
		}

		if outcome.Err != nil {
			utils.LogWarning("Clip %d skipped: %v", i+1, outcome.Err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// survivingClips returns the paths of successfully normalized clips in order
func survivingClips(outcomes []ClipOutcome) []string {
	var paths []string
	for _, o := range outcomes {
		if o.Err == nil && o.Path != "" {
			paths = append(paths, o.Path)
		}
	}
	return paths
}
