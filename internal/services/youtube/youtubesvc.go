package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// uploadChunkSize makes the media upload resumable
const uploadChunkSize = 8 * 1024 * 1024

// Client uploads videos through the YouTube Data API v3
type Client struct {
	service *youtube.Service
}

// NewClient creates an upload client authorized by the run's credentials.
// Requests answered with 500, 502, 503 or 504 are sent again after retryDelay,
// so a failed chunk resumes at its own offset. A nil sleep uses utils.Sleep.
func NewClient(ctx context.Context, creds *Credentials, retryDelay time.Duration, sleep SleepFunc, opts ...option.ClientOption) (*Client, error) {
	if sleep == nil {
		sleep = utils.Sleep
	}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: creds.TokenSource(ctx),
			Base:   &retryTransport{base: http.DefaultTransport, delay: retryDelay, sleep: sleep},
		},
	}
	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// NewVideo builds the insert request body
func NewVideo(meta VideoMetadata) *youtube.Video {
	return &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:           meta.Title,
			Description:     meta.Description,
			Tags:            meta.Tags,
			CategoryId:      meta.CategoryID,
			DefaultLanguage: meta.DefaultLanguage,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}
}

// UploadOnce performs one resumable upload, logging progress
func (c *Client) UploadOnce(ctx context.Context, videoPath string, meta VideoMetadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			utils.LogWarning("Failed to close video file: %v", err)
		}
	}()

	lastPercent := int64(-1)
	call := c.service.Videos.Insert([]string{"snippet", "status"}, NewVideo(meta))
	call.Context(ctx)
	call.ProgressUpdater(func(current, total int64) {
		if total <= 0 {
			return
		}
		percent := current * 100 / total
		if percent/10 != lastPercent/10 {
			lastPercent = percent
			utils.LogVerbose("Upload: %d%%", percent)
		}
	})

	response, err := call.Media(file, googleapi.ChunkSize(uploadChunkSize), googleapi.ContentType("video/mp4")).Do()
	if err != nil {
		return "", err
	}
	return response.Id, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryable reports whether an upload error is a transient server error
func retryable(err error) (int, bool) {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return 0, false
	}
	return apiErr.Code, retryableStatus(apiErr.Code)
}

// SleepFunc waits between upload attempts
type SleepFunc func(ctx context.Context, d time.Duration) error

// retryTransport resends a request after a transient server error. The
// resumable session request and every chunk carry a replayable body, so the
// upload library never sees the failure and keeps its offset. Requests whose
// body cannot be replayed get the error response back.
type retryTransport struct {
	base  http.RoundTripper
	delay time.Duration
	sleep SleepFunc
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := t.base.RoundTrip(req)
		if err != nil || !retryableStatus(resp.StatusCode) {
			return resp, err
		}
		if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
			return resp, nil
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		utils.LogWarning("Upload request failed with HTTP %d (attempt %d), retrying in %s", resp.StatusCode, attempt, t.delay)
		if err := t.sleep(req.Context(), t.delay); err != nil {
			return nil, fmt.Errorf("upload retry interrupted: %w", err)
		}

		next := req.Clone(req.Context())
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
			next.Body = body
		}
		req = next
	}
}

// UploadWithRetry retries the upload after HTTP 500, 502, 503 and 504, waiting
// delay between attempts, until it succeeds, fails otherwise, or ctx ends.
// With Client this only sees errors of single-request uploads; chunked
// uploads are retried in place by the client's transport.
func UploadWithRetry(ctx context.Context, uploader Uploader, videoPath string, meta VideoMetadata, delay time.Duration, sleep SleepFunc) (string, error) {
	if sleep == nil {
		sleep = utils.Sleep
	}

	for attempt := 1; ; attempt++ {
		id, err := uploader.UploadOnce(ctx, videoPath, meta)
		if err == nil {
			return id, nil
		}

		code, ok := retryable(err)
		if !ok {
			return "", &utils.ExternalCallError{Service: "youtube", StatusCode: code, Err: err}
		}

		utils.LogWarning("Upload attempt %d failed with HTTP %d, retrying in %s", attempt, code, delay)
		if err := sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("upload retry interrupted: %w", err)
		}
	}
}
