package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// DefaultBaseURL is the public Pexels API
const DefaultBaseURL = "https://api.pexels.com"

// Client is a minimal Pexels video search client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the given per-request timeout
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, &utils.ValidationError{Field: "PEXELS_API_KEY", Message: "environment variable is not set"}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SearchVideos queries /videos/search and returns the hits in API order
func (c *Client) SearchVideos(ctx context.Context, query string, opts SearchOptions) ([]Video, error) {
	params := url.Values{}
	params.Set("query", query)
	if opts.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Orientation != "" {
		params.Set("orientation", opts.Orientation)
	}
	if opts.Size != "" {
		params.Set("size", opts.Size)
	}

	searchURL := fmt.Sprintf("%s/videos/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	utils.LogDebug("Pexels search: %s", searchURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &utils.ExternalCallError{Service: "pexels", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			utils.LogWarning("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &utils.ExternalCallError{
			Service:    "pexels",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", body),
		}
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &utils.ExternalCallError{Service: "pexels", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return result.Videos, nil
}
