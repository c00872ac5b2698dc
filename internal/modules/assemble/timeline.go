package assemble

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

const (
	// timelinePadding is how far the clips must run past the narration
	timelinePadding = 3.0
	// minimumClipDuration is the nominal length of clips reporting <= 0s
	minimumClipDuration = 1.0
)

// ProbedClip is a normalized clip with its measured video duration
type ProbedClip struct {
	Path     string
	Duration float64
	HasVideo bool
}

// TimelineEntry is one line of the concat playlist
type TimelineEntry struct {
	Path     string
	Duration float64
}

// Timeline is the ordered clip sequence covering the narration
type Timeline struct {
	Entries []TimelineEntry
	Total   float64
}

// BuildTimeline lays the clips end to end, looping over them, until the
// nominal total reaches narration+3s. Clips without a video stream are
// skipped and clips reporting a non-positive duration count as 1s. A pass
// that appends nothing fails with ErrNoClips.
func BuildTimeline(clips []ProbedClip, narration float64) (Timeline, error) {
	target := narration + timelinePadding
	var timeline Timeline

	for timeline.Total < target || len(timeline.Entries) == 0 {
		appended := false
		for _, clip := range clips {
			if !clip.HasVideo {
				continue
			}
			d := clip.Duration
			if d <= 0 {
				d = minimumClipDuration
			}
			timeline.Entries = append(timeline.Entries, TimelineEntry{Path: clip.Path, Duration: d})
			timeline.Total += d
			appended = true
			if timeline.Total >= target {
				break
			}
		}
		if !appended {
			return Timeline{}, fmt.Errorf("no clip has a video stream: %w", utils.ErrNoClips)
		}
	}
	return timeline, nil
}

// probeClips measures each normalized clip once
func probeClips(ctx context.Context, paths []string) ([]ProbedClip, error) {
	clips := make([]ProbedClip, 0, len(paths))
	for _, path := range paths {
		d, found, err := ClipDuration(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to probe clip %s: %w", path, err)
		}
		if !found {
			utils.LogWarning("Clip %s has no video stream", path)
		}
		clips = append(clips, ProbedClip{Path: path, Duration: d, HasVideo: found})
	}
	return clips, nil
}

// quotePlaylistPath wraps a path for the concat demuxer
func quotePlaylistPath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// Playlist renders the concat demuxer file
func (t Timeline) Playlist() string {
	var b strings.Builder
	for _, e := range t.Entries {
		fmt.Fprintf(&b, "file %s\n", quotePlaylistPath(e.Path))
	}
	return b.String()
}

// WritePlaylist writes the concat demuxer file
func WritePlaylist(path string, timeline Timeline) error {
	if err := os.WriteFile(path, []byte(timeline.Playlist()), 0644); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}
	return nil
}

// ConcatArgs stream-copies the playlist into a silent video one second
// longer than the narration
func ConcatArgs(playlist, out string, narration float64) []string {
	return []string{
		"-y", "-f", "concat", "-safe", "0",
		"-i", playlist,
		"-t", seconds(narration + 1),
		"-c:v", "copy", "-an", out,
	}
}

// ConcatTimeline joins the playlist entries
func ConcatTimeline(ctx context.Context, playlist, out string, narration float64) error {
	_, err := runTool(ctx, "ffmpeg", ConcatArgs(playlist, out, narration)...)
	return err
}
