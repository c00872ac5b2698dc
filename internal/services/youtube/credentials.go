package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// UploadScope is the only scope the pipeline needs
const UploadScope = "https://www.googleapis.com/auth/youtube.upload"

// authorizedUser is the serialized form of a user token with its refresh token
type authorizedUser struct {
	Token        string   `json:"token,omitempty"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

// Credentials hold the OAuth client and user token for one run
type Credentials struct {
	Config *oauth2.Config
	Token  *oauth2.Token

	mu     sync.Mutex
	source oauth2.TokenSource
}

// ParseCredentials builds Credentials from the authorized-user token JSON and
// the OAuth client JSON. The client JSON may be empty when the token JSON
// carries client_id and client_secret itself.
func ParseCredentials(tokenJSON, clientJSON string) (*Credentials, error) {
	if strings.TrimSpace(tokenJSON) == "" {
		return nil, &utils.ValidationError{Field: "YOUTUBE_TOKEN", Message: "environment variable is not set"}
	}

	var user authorizedUser
	if err := json.Unmarshal([]byte(tokenJSON), &user); err != nil {
		return nil, &utils.ValidationError{Field: "YOUTUBE_TOKEN", Message: "not valid JSON", Err: err}
	}
	if user.RefreshToken == "" && user.Token == "" {
		return nil, &utils.ValidationError{Field: "YOUTUBE_TOKEN", Message: "neither token nor refresh_token present"}
	}

	var cfg *oauth2.Config
	if strings.TrimSpace(clientJSON) != "" {
		parsed, err := google.ConfigFromJSON([]byte(clientJSON), UploadScope)
		if err != nil {
			return nil, &utils.ValidationError{Field: "YOUTUBE_CLIENT", Message: "invalid OAuth client JSON", Err: err}
		}
		cfg = parsed
	} else {
		if user.ClientID == "" {
			return nil, &utils.ValidationError{Field: "YOUTUBE_CLIENT", Message: "environment variable is not set"}
		}
		cfg = &oauth2.Config{
			ClientID:     user.ClientID,
			ClientSecret: user.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{UploadScope},
		}
		if user.TokenURI != "" {
			cfg.Endpoint.TokenURL = user.TokenURI
		}
	}

	token := &oauth2.Token{
		AccessToken:  user.Token,
		RefreshToken: user.RefreshToken,
		TokenType:    "Bearer",
	}
	if user.Expiry != "" {
		if expiry, err := time.Parse(time.RFC3339Nano, user.Expiry); err == nil {
			token.Expiry = expiry
		} else {
			utils.LogDebug("Ignoring unparsable token expiry %q", user.Expiry)
		}
	}

	return &Credentials{Config: cfg, Token: token}, nil
}

// TokenSource returns the run-scoped token source, refreshing as needed
func (c *Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.source == nil {
		c.source = oauth2.ReuseTokenSource(c.Token, c.Config.TokenSource(ctx, c.Token))
	}
	return c.source
}

// Refreshed returns the current token and whether it differs from the one the
// run started with. Nothing is written back to the environment.
func (c *Credentials) Refreshed() (*oauth2.Token, bool) {
	c.mu.Lock()
	source := c.source
	c.mu.Unlock()
	if source == nil {
		return c.Token, false
	}

	current, err := source.Token()
	if err != nil {
		utils.LogDebug("Token source error: %v", err)
		return c.Token, false
	}
	return current, current.AccessToken != c.Token.AccessToken
}

// AuthorizedUserJSON serializes a token in the same form ParseCredentials reads
func AuthorizedUserJSON(cfg *oauth2.Config, token *oauth2.Token) (string, error) {
	user := authorizedUser{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     cfg.Endpoint.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       cfg.Scopes,
	}
	if !token.Expiry.IsZero() {
		user.Expiry = token.Expiry.UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}
	return string(data), nil
}
