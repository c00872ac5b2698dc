package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// drawtextEscaper escapes in a single left-to-right pass
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`,`, `\,`,
)

// EscapeDrawtext makes a title safe inside a quoted drawtext value
func EscapeDrawtext(s string) string {
	return drawtextEscaper.Replace(s)
}

// UnescapeDrawtext reverses EscapeDrawtext
func UnescapeDrawtext(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

// OverlayResult reports whether the title was burned in
type OverlayResult struct {
	Overlaid bool
	Err      error
}

// OverlayFilter draws a translucent bar at the bottom with the centered title
func OverlayFilter(title, font string) string {
	return fmt.Sprintf(
		"drawbox=x=0:y=ih-210:w=iw:h=210:color=black@0.72:t=fill,"+
			"drawtext=text='%s':fontsize=44:fontcolor=white:"+
			"x=(w-text_w)/2:y=h-170:font='%s':"+
			"line_spacing=6:borderw=2:bordercolor=black",
		EscapeDrawtext(title), font)
}

// OverlayArgs re-encodes the video with the title overlay
func OverlayArgs(in, out, title, font string) []string {
	return []string{
		"-y", "-i", in,
		"-vf", OverlayFilter(title, font),
		"-c:v", "libx264", "-preset", "fast", "-crf", "22",
		"-c:a", "copy",
		out,
	}
}

// RenderOverlay burns the title into the video. If ffmpeg fails the input is
// copied byte for byte to out; only a failed copy is returned as an error.
func RenderOverlay(ctx context.Context, in, out, title, font string) (OverlayResult, error) {
	_, err := runTool(ctx, "ffmpeg", OverlayArgs(in, out, title, font)...)
	if err == nil {
		return OverlayResult{Overlaid: true}, nil
	}
	if ctx.Err() != nil {
		return OverlayResult{}, err
	}

	utils.LogWarning("Title overlay failed, keeping video without title: %v", err)
	if copyErr := utils.CopyFile(in, out); copyErr != nil {
		return OverlayResult{Err: err}, fmt.Errorf("overlay fallback copy failed: %w", copyErr)
	}
	return OverlayResult{Overlaid: false, Err: err}, nil
}
