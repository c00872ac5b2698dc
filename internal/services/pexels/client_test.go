package pexels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "deep sea", q.Get("query"))
		assert.Equal(t, "5", q.Get("per_page"))
		assert.Equal(t, "portrait", q.Get("orientation"))
		assert.Equal(t, "medium", q.Get("size"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"per_page":5,"videos":[{"id":7,"video_files":[{"quality":"hd","width":1080,"height":1920,"link":"https://x/7.mp4"}]}]}`))
	}))
	defer srv.Close()

	client, err := NewClient("secret", srv.URL, 5*time.Second)
	require.NoError(t, err)

	videos, err := client.SearchVideos(context.Background(), "deep sea", SearchOptions{PerPage: 5, Orientation: "portrait", Size: "medium"})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, 7, videos[0].ID)
	assert.True(t, videos[0].VideoFiles[0].Portrait())
}

func TestSearchVideosStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient("bad", srv.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.SearchVideos(context.Background(), "ocean", SearchOptions{})
	var callErr *utils.ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusUnauthorized, callErr.StatusCode)
}

func TestSearchVideosTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := NewClient("key", srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = client.SearchVideos(context.Background(), "ocean", SearchOptions{})
	var callErr *utils.ExternalCallError
	assert.ErrorAs(t, err, &callErr)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "", time.Second)
	assert.Error(t, err)
}
