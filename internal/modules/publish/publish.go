package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/modules/script"
	"github.com/gnzdotmx/dailyshorts/internal/services/youtube"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

const (
	shortsTag      = "#Shorts"
	maxTitleLength = 100
)

// Result identifies a published video
type Result struct {
	VideoID string
	URL     string
}

// Module uploads finished videos
type Module struct {
	uploader youtube.Uploader
	cfg      config.UploadConfig
	sleep    youtube.SleepFunc
}

// New creates a publisher around an uploader
func New(uploader youtube.Uploader, cfg config.UploadConfig) *Module {
	return &Module{
		uploader: uploader,
		cfg:      cfg,
		sleep:    utils.Sleep,
	}
}

// ShortsTitle appends the #Shorts marker when missing and cuts to 100 characters
func ShortsTitle(title string) string {
	if !strings.Contains(title, shortsTag) {
		title = title + " " + shortsTag
	}
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		runes = runes[:maxTitleLength]
	}
	return string(runes)
}

// MergeTags appends base tags to the script tags, keeping the first occurrence of each
func MergeTags(tags, baseTags []string) []string {
	seen := make(map[string]bool, len(tags)+len(baseTags))
	merged := make([]string, 0, len(tags)+len(baseTags))
	for _, tag := range append(append([]string{}, tags...), baseTags...) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		merged = append(merged, tag)
	}
	return merged
}

// BuildMetadata derives the upload metadata from a script
func BuildMetadata(s *script.Script, cfg config.UploadConfig) youtube.VideoMetadata {
	n := min(max(cfg.DescriptionTags, 0), len(cfg.BaseTags))

	return youtube.VideoMetadata{
		Title:           ShortsTitle(s.Title),
		Description:     s.Description + "\n\n" + strings.Join(cfg.BaseTags[:n], " "),
		Tags:            MergeTags(s.Tags, cfg.BaseTags),
		CategoryID:      cfg.CategoryID,
		DefaultLanguage: cfg.Language,
		PrivacyStatus:   cfg.Privacy,
	}
}

// VideoURL returns the short link of an uploaded video
func VideoURL(id string) string {
	return fmt.Sprintf("https://youtu.be/%s", id)
}

// Publish uploads the video, retrying transient server errors
func (m *Module) Publish(ctx context.Context, videoPath string, s *script.Script) (Result, error) {
	meta := BuildMetadata(s, m.cfg)
	if size, err := utils.FileSizeMB(videoPath); err == nil {
		utils.LogVerbose("Uploading %s (%.1f MB) as %q", videoPath, size, meta.Title)
	}

	id, err := youtube.UploadWithRetry(ctx, m.uploader, videoPath, meta, m.cfg.RetryDelay, m.sleep)
	if err != nil {
		return Result{}, err
	}

	return Result{VideoID: id, URL: VideoURL(id)}, nil
}
