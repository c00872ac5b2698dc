package assemble

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// narrationFallback is used whenever the narration cannot be measured
	narrationFallback = 60.0
	// clipDurationFallback is used for video streams without a duration
	clipDurationFallback = 10.0
)

// Stream is the subset of ffprobe stream fields the assembler reads
type Stream struct {
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
}

// ProbeResult is the decoded output of ffprobe -show_streams
type ProbeResult struct {
	Streams []Stream `json:"streams"`
}

// Probe runs ffprobe on a media file
func Probe(ctx context.Context, path string) (*ProbeResult, error) {
	out, err := runTool(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", path)
	if err != nil {
		return nil, err
	}

	var result ProbeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output for %s: %w", path, err)
	}
	return &result, nil
}

// StreamDuration returns the first stream of the given codec type.
// found is false when no such stream exists; ok is false when its duration
// is missing or unparsable.
func (p *ProbeResult) StreamDuration(codecType string) (duration float64, found bool, ok bool) {
	for _, s := range p.Streams {
		if s.CodecType != codecType {
			continue
		}
		if s.Duration == "" {
			return 0, true, false
		}
		d, err := strconv.ParseFloat(s.Duration, 64)
		if err != nil {
			return 0, true, false
		}
		return d, true, true
	}
	return 0, false, false
}

// NarrationDuration measures the first audio stream and falls back to 60s
// on any failure
func NarrationDuration(ctx context.Context, path string) float64 {
	result, err := Probe(ctx, path)
	if err != nil {
		return narrationFallback
	}
	d, found, ok := result.StreamDuration("audio")
	if !found || !ok {
		return narrationFallback
	}
	return d
}

// ClipDuration measures the first video stream of a clip. found is false
// when the clip has no video stream. A tool failure is returned as is.
func ClipDuration(ctx context.Context, path string) (float64, bool, error) {
	result, err := Probe(ctx, path)
	if err != nil {
		return 0, false, err
	}
	d, found, ok := result.StreamDuration("video")
	if !found {
		return 0, false, nil
	}
	if !ok {
		return clipDurationFallback, true, nil
	}
	return d, true, nil
}
