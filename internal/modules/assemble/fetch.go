package assemble

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

const (
	userAgent = "Mozilla/5.0"
	// DefaultFetchTimeout bounds a clip download
	DefaultFetchTimeout = 60 * time.Second
)

// FetchFunc downloads url to dest within timeout
type FetchFunc func(ctx context.Context, url, dest string, timeout time.Duration) error

// Fetch performs a single GET and streams the body to dest. Network errors,
// timeouts and non-2xx statuses are returned as ExternalCallError.
func Fetch(ctx context.Context, url, dest string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &utils.ExternalCallError{Service: "fetch", Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return &utils.ExternalCallError{Service: "fetch", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			utils.LogWarning("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &utils.ExternalCallError{
			Service:    "fetch",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("GET %s", url),
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return &utils.ExternalCallError{Service: "fetch", Err: err}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}
	return nil
}
