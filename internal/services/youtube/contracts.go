package youtube

import (
	"context"
)

// VideoMetadata is the snippet and status sent with an upload
type VideoMetadata struct {
	Title           string
	Description     string
	Tags            []string
	CategoryID      string
	DefaultLanguage string
	PrivacyStatus   string
}

// Uploader performs a single upload attempt and returns the new video id
type Uploader interface {
	// UploadOnce uploads the file at videoPath with the given metadata
	UploadOnce(ctx context.Context, videoPath string, meta VideoMetadata) (string, error)
}

// Ensure Client implements Uploader
var _ Uploader = (*Client)(nil)
