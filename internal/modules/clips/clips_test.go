package clips

import (
	"context"
	"errors"
	"testing"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/services/pexels"
	"github.com/gnzdotmx/dailyshorts/internal/services/pexels/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func portrait(quality, link string) pexels.VideoFile {
	return pexels.VideoFile{Quality: quality, Width: 1080, Height: 1920, Link: link}
}

func landscape(quality, link string) pexels.VideoFile {
	return pexels.VideoFile{Quality: quality, Width: 1920, Height: 1080, Link: link}
}

func TestSelectPortraitLink(t *testing.T) {
	tests := []struct {
		name   string
		videos []pexels.Video
		want   string
		found  bool
	}{
		{
			name:   "no videos",
			videos: nil,
			found:  false,
		},
		{
			name: "first portrait kept without hd",
			videos: []pexels.Video{{VideoFiles: []pexels.VideoFile{
				landscape("hd", "l1"), portrait("sd", "p1"), portrait("sd", "p2"),
			}}},
			want:  "p1",
			found: true,
		},
		{
			name: "last hd wins",
			videos: []pexels.Video{{VideoFiles: []pexels.VideoFile{
				portrait("sd", "p1"), portrait("hd", "h1"), portrait("sd", "p2"), portrait("hd", "h2"),
			}}},
			want:  "h2",
			found: true,
		},
		{
			name: "skips videos without portrait files",
			videos: []pexels.Video{
				{VideoFiles: []pexels.VideoFile{landscape("hd", "l1")}},
				{VideoFiles: []pexels.VideoFile{portrait("hd", "h1")}},
			},
			want:  "h1",
			found: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectPortraitLink(tt.videos)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind(t *testing.T) {
	svc := mocks.NewMockService(t)
	opts := pexels.SearchOptions{PerPage: 5, Orientation: "portrait", Size: "medium"}
	svc.EXPECT().SearchVideos(mock.Anything, "ocean", opts).
		Return([]pexels.Video{{VideoFiles: []pexels.VideoFile{portrait("hd", "ocean.mp4")}}}, nil)
	svc.EXPECT().SearchVideos(mock.Anything, "jellyfish", opts).
		Return(nil, errors.New("timeout"))
	svc.EXPECT().SearchVideos(mock.Anything, "night", opts).
		Return([]pexels.Video{{VideoFiles: []pexels.VideoFile{portrait("sd", "night.mp4")}}}, nil)

	m := New(svc, config.Default().Clips)
	links, err := m.Find(context.Background(), []string{"ocean", "jellyfish", "night", "ignored"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ocean.mp4", "night.mp4"}, links)
}

func TestFindNoLinks(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.EXPECT().SearchVideos(mock.Anything, mock.Anything, mock.Anything).
		Return([]pexels.Video{{VideoFiles: []pexels.VideoFile{landscape("hd", "l")}}}, nil)

	m := New(svc, config.Default().Clips)
	_, err := m.Find(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, ErrNoLinks)
}

func TestFindCapsLinks(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.EXPECT().SearchVideos(mock.Anything, mock.Anything, mock.Anything).
		Return([]pexels.Video{{VideoFiles: []pexels.VideoFile{portrait("hd", "x.mp4")}}}, nil)

	cfg := config.Default().Clips
	cfg.MaxTerms = 5
	cfg.MaxClips = 2
	links, err := New(svc, cfg).Find(context.Background(), []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Len(t, links, 2)
}
