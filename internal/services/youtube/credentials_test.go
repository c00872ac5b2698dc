package youtube

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

const testClientJSON = `{"installed":{"client_id":"cid.apps.googleusercontent.com","client_secret":"csecret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`

func TestParseCredentials(t *testing.T) {
	tokenJSON := `{"token":"access","refresh_token":"refresh","token_uri":"https://oauth2.googleapis.com/token","client_id":"cid","client_secret":"csecret","scopes":["https://www.googleapis.com/auth/youtube.upload"],"expiry":"2026-01-02T03:04:05.123456Z"}`

	creds, err := ParseCredentials(tokenJSON, testClientJSON)
	require.NoError(t, err)

	assert.Equal(t, "cid.apps.googleusercontent.com", creds.Config.ClientID)
	assert.Equal(t, []string{UploadScope}, creds.Config.Scopes)
	assert.Equal(t, "access", creds.Token.AccessToken)
	assert.Equal(t, "refresh", creds.Token.RefreshToken)
	assert.Equal(t, 2026, creds.Token.Expiry.Year())
}

func TestParseCredentialsFromTokenOnly(t *testing.T) {
	creds, err := ParseCredentials(`{"refresh_token":"r","client_id":"cid","client_secret":"s","token_uri":"https://example.test/token"}`, "")
	require.NoError(t, err)
	assert.Equal(t, "cid", creds.Config.ClientID)
	assert.Equal(t, "https://example.test/token", creds.Config.Endpoint.TokenURL)
}

func TestParseCredentialsErrors(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		client string
		field  string
	}{
		{"missing token", "", testClientJSON, "YOUTUBE_TOKEN"},
		{"bad token json", "{", testClientJSON, "YOUTUBE_TOKEN"},
		{"empty token", `{}`, testClientJSON, "YOUTUBE_TOKEN"},
		{"bad client json", `{"refresh_token":"r"}`, "{", "YOUTUBE_CLIENT"},
		{"no client at all", `{"refresh_token":"r"}`, "", "YOUTUBE_CLIENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCredentials(tt.token, tt.client)
			var validationErr *utils.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCredentialsRefreshed(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh", r.PostForm.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	expired := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	creds, err := ParseCredentials(`{"token":"stale","refresh_token":"refresh","client_id":"cid","client_secret":"s","token_uri":"`+tokenServer.URL+`","expiry":"`+expired+`"}`, "")
	require.NoError(t, err)

	_, changed := creds.Refreshed()
	assert.False(t, changed)

	tok, err := creds.TokenSource(context.Background()).Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)

	current, changed := creds.Refreshed()
	assert.True(t, changed)
	assert.Equal(t, "fresh", current.AccessToken)
	assert.Equal(t, "stale", creds.Token.AccessToken)
}

func TestAuthorizedUserJSONRoundTrip(t *testing.T) {
	creds, err := ParseCredentials(`{"token":"a","refresh_token":"r"}`, testClientJSON)
	require.NoError(t, err)

	serialized, err := AuthorizedUserJSON(creds.Config, creds.Token)
	require.NoError(t, err)

	again, err := ParseCredentials(serialized, "")
	require.NoError(t, err)
	assert.Equal(t, "r", again.Token.RefreshToken)
	assert.Equal(t, creds.Config.ClientID, again.Config.ClientID)
}
