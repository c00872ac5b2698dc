package youtube_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/services/youtube"
	youtubemocks "github.com/gnzdotmx/dailyshorts/internal/services/youtube/mocks"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type recordingSleep struct {
	waits []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func TestUploadWithRetry_RetriesServerErrors(t *testing.T) {
	uploader := youtubemocks.NewMockUploader(t)
	uploader.EXPECT().UploadOnce(mock.Anything, "final.mp4", mock.Anything).
		Return("", &googleapi.Error{Code: http.StatusServiceUnavailable}).Twice()
	uploader.EXPECT().UploadOnce(mock.Anything, "final.mp4", mock.Anything).
		Return("abc123", nil).Once()

	rec := &recordingSleep{}
	id, err := youtube.UploadWithRetry(context.Background(), uploader, "final.mp4", youtube.VideoMetadata{}, 5*time.Second, rec.sleep)

	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, rec.waits)
}

func TestUploadWithRetry_RetryableCodes(t *testing.T) {
	for _, code := range []int{500, 502, 503, 504} {
		uploader := youtubemocks.NewMockUploader(t)
		uploader.EXPECT().UploadOnce(mock.Anything, mock.Anything, mock.Anything).
			Return("", &googleapi.Error{Code: code}).Once()
		uploader.EXPECT().UploadOnce(mock.Anything, mock.Anything, mock.Anything).
			Return("id", nil).Once()

		rec := &recordingSleep{}
		id, err := youtube.UploadWithRetry(context.Background(), uploader, "v.mp4", youtube.VideoMetadata{}, time.Second, rec.sleep)
		require.NoError(t, err, "code %d", code)
		assert.Equal(t, "id", id)
		assert.Len(t, rec.waits, 1)
	}
}

func TestUploadWithRetry_PropagatesOtherErrors(t *testing.T) {
	uploader := youtubemocks.NewMockUploader(t)
	uploader.EXPECT().UploadOnce(mock.Anything, mock.Anything, mock.Anything).
		Return("", &googleapi.Error{Code: http.StatusForbidden, Message: "quotaExceeded"}).Once()

	rec := &recordingSleep{}
	_, err := youtube.UploadWithRetry(context.Background(), uploader, "v.mp4", youtube.VideoMetadata{}, 5*time.Second, rec.sleep)

	var callErr *utils.ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusForbidden, callErr.StatusCode)
	assert.Empty(t, rec.waits)

	uploader2 := youtubemocks.NewMockUploader(t)
	uploader2.EXPECT().UploadOnce(mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection reset")).Once()
	_, err = youtube.UploadWithRetry(context.Background(), uploader2, "v.mp4", youtube.VideoMetadata{}, 5*time.Second, rec.sleep)
	assert.ErrorAs(t, err, &callErr)
}

func TestUploadWithRetry_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	uploader := youtubemocks.NewMockUploader(t)
	uploader.EXPECT().UploadOnce(mock.Anything, mock.Anything, mock.Anything).
		Run(func(context.Context, string, youtube.VideoMetadata) { cancel() }).
		Return("", &googleapi.Error{Code: http.StatusBadGateway}).Once()

	_, err := youtube.UploadWithRetry(ctx, uploader, "v.mp4", youtube.VideoMetadata{}, time.Hour, utils.Sleep)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewVideo(t *testing.T) {
	video := youtube.NewVideo(youtube.VideoMetadata{
		Title:           "Warum leuchtet die Tiefsee? #Shorts",
		Description:     "desc",
		Tags:            []string{"a", "b"},
		CategoryID:      "27",
		DefaultLanguage: "de",
		PrivacyStatus:   "public",
	})

	assert.Equal(t, "27", video.Snippet.CategoryId)
	assert.Equal(t, "de", video.Snippet.DefaultLanguage)
	assert.Equal(t, "public", video.Status.PrivacyStatus)
	assert.False(t, video.Status.SelfDeclaredMadeForKids)
	assert.Contains(t, video.Status.ForceSendFields, "SelfDeclaredMadeForKids")
}

// resumableServer fakes the resumable upload endpoint. The first failChunks
// chunk requests are answered with 503 and their bytes are discarded.
type resumableServer struct {
	mu         sync.Mutex
	total      int
	received   int
	failChunks int
	inits      int
	chunks     int
	meta       map[string]interface{}
	uploadType string
}

func (s *resumableServer) handler(t *testing.T, sessionURL func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		if strings.HasSuffix(r.URL.Path, "/youtube/v3/videos") {
			s.inits++
			s.uploadType = r.URL.Query().Get("uploadType")
			assert.Equal(t, "video/mp4", r.Header.Get("X-Upload-Content-Type"))
			assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
			assert.NoError(t, json.Unmarshal(body, &s.meta))
			w.Header().Set("Location", sessionURL())
			w.WriteHeader(http.StatusOK)
			return
		}

		s.chunks++
		if s.failChunks > 0 {
			s.failChunks--
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		s.received += len(body)
		if s.received < s.total {
			w.Header().Set("Range", fmt.Sprintf("bytes=0-%d", s.received-1))
			if r.Header.Get("X-GUploader-No-308") == "yes" {
				w.Header().Set("X-Http-Status-Code-Override", "308")
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusPermanentRedirect)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"vid42"}`))
	}
}

func testCredentials(t *testing.T) *youtube.Credentials {
	t.Helper()
	expiry := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	creds, err := youtube.ParseCredentials(`{"token":"access","refresh_token":"r","client_id":"cid","client_secret":"s","expiry":"`+expiry+`"}`, "")
	require.NoError(t, err)
	return creds
}

func TestClientUploadOnce_ResumesChunkAfterServerErrors(t *testing.T) {
	const size = 9 * 1024 * 1024
	path := filepath.Join(t.TempDir(), "video_1.mp4")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))

	fake := &resumableServer{total: size, failChunks: 2}
	var srv *httptest.Server
	srv = httptest.NewServer(fake.handler(t, func() string { return srv.URL + "/session" }))
	defer srv.Close()

	rec := &recordingSleep{}
	client, err := youtube.NewClient(context.Background(), testCredentials(t), 5*time.Second, rec.sleep,
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	id, err := client.UploadOnce(context.Background(), path, youtube.VideoMetadata{
		Title:         "Warum leuchtet die Tiefsee? #Shorts",
		CategoryID:    "27",
		PrivacyStatus: "public",
	})
	require.NoError(t, err)

	assert.Equal(t, "vid42", id)
	assert.Equal(t, "resumable", fake.uploadType)
	assert.Equal(t, 1, fake.inits)
	assert.Equal(t, 4, fake.chunks)
	assert.Equal(t, size, fake.received)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, rec.waits)

	status, ok := fake.meta["status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, status["selfDeclaredMadeForKids"])
	assert.Equal(t, "public", status["privacyStatus"])
	snippet, ok := fake.meta["snippet"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "27", snippet["categoryId"])
}

func TestClientUploadOnce_StopsWhenContextEnds(t *testing.T) {
	const size = 9 * 1024 * 1024
	path := filepath.Join(t.TempDir(), "video_1.mp4")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))

	fake := &resumableServer{total: size, failChunks: 1}
	var srv *httptest.Server
	srv = httptest.NewServer(fake.handler(t, func() string { return srv.URL + "/session" }))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sleep := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}
	client, err := youtube.NewClient(ctx, testCredentials(t), 5*time.Second, sleep, option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.UploadOnce(ctx, path, youtube.VideoMetadata{Title: "t", PrivacyStatus: "public"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fake.chunks)
}
