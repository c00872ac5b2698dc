package clips

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/services/pexels"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// ErrNoLinks is returned when no search term produced a usable clip
var ErrNoLinks = errors.New("no stock clips found")

// Module turns search terms into portrait clip links
type Module struct {
	service  pexels.Service
	perPage  int
	maxTerms int
	maxClips int
}

// New creates a clip search module
func New(service pexels.Service, cfg config.ClipsConfig) *Module {
	return &Module{
		service:  service,
		perPage:  cfg.PerPage,
		maxTerms: cfg.MaxTerms,
		maxClips: cfg.MaxClips,
	}
}

// SelectPortraitLink picks one link from a result list: the first video that
// has a portrait file wins. Among its portrait files the last HD one is kept,
// otherwise the first portrait file seen.
func SelectPortraitLink(videos []pexels.Video) (string, bool) {
	for _, video := range videos {
		var best *pexels.VideoFile
		for i := range video.VideoFiles {
			file := &video.VideoFiles[i]
			if !file.Portrait() {
				continue
			}
			if best == nil || file.Quality == "hd" {
				best = file
			}
		}
		if best != nil {
			return best.Link, true
		}
	}
	return "", false
}

// Find searches the first terms and returns at most one link per term.
// A failing term is logged and skipped; no link at all is an error.
func (m *Module) Find(ctx context.Context, terms []string) ([]string, error) {
	if len(terms) > m.maxTerms {
		terms = terms[:m.maxTerms]
	}

	opts := pexels.SearchOptions{
		PerPage:     m.perPage,
		Orientation: "portrait",
		Size:        "medium",
	}

	var links []string
	for _, term := range terms {
		videos, err := m.service.SearchVideos(ctx, term, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			utils.LogWarning("Clip search failed for %q: %v", term, err)
			continue
		}

		link, ok := SelectPortraitLink(videos)
		if !ok {
			utils.LogVerbose("No portrait clip for %q", term)
			continue
		}
		links = append(links, link)
	}

	if len(links) == 0 {
		return nil, fmt.Errorf("%w for terms %v", ErrNoLinks, terms)
	}
	if len(links) > m.maxClips {
		links = links[:m.maxClips]
	}
	return links, nil
}
