package pexels

import (
	"context"
)

// VideoFile is one rendition of a stock video
type VideoFile struct {
	ID       int    `json:"id"`
	Quality  string `json:"quality"`
	FileType string `json:"file_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Link     string `json:"link"`
}

// Portrait reports whether the rendition is taller than wide
func (f VideoFile) Portrait() bool {
	return f.Height > f.Width
}

// Video is a single search hit
type Video struct {
	ID         int         `json:"id"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Duration   int         `json:"duration"`
	URL        string      `json:"url"`
	VideoFiles []VideoFile `json:"video_files"`
}

// SearchResponse is the body of /videos/search
type SearchResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	Videos       []Video `json:"videos"`
}

// SearchOptions narrows a video search
type SearchOptions struct {
	PerPage     int
	Orientation string
	Size        string
}

// Service defines the stock video search operations
type Service interface {
	// SearchVideos runs one query against the video search endpoint
	SearchVideos(ctx context.Context, query string, opts SearchOptions) ([]Video, error)
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)
