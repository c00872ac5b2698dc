package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// OAuthCallbackServer receives the authorization code of a one-time consent flow
type OAuthCallbackServer struct {
	state    string
	codeChan chan string
	server   *http.Server
	listener net.Listener
	wg       sync.WaitGroup
}

// NewOAuthCallbackServer creates a callback server that only accepts the given state value
func NewOAuthCallbackServer(state string) *OAuthCallbackServer {
	return &OAuthCallbackServer{
		state:    state,
		codeChan: make(chan string, 1),
	}
}

// Handler returns the router serving the callback
func (s *OAuthCallbackServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleCallback)
	return r
}

// Start starts the callback server on the specified port; port 0 picks a free one
func (s *OAuthCallbackServer) Start(port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen for OAuth callback: %w", err)
	}
	s.listener = listener
	s.server = &http.Server{Handler: s.Handler()}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			LogError("Callback server error: %v", err)
		}
	}()

	return nil
}

func (s *OAuthCallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if s.state != "" && r.URL.Query().Get("state") != s.state {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No authorization code received", http.StatusBadRequest)
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	w.Header().Set("Content-Type", "text/html")
	if _, err := fmt.Fprint(w, `<html><head><title>Authorization Successful</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding-top: 3rem;">
<h1 style="color: #1a73e8;">Authorization Successful</h1>
<p>You can now close this window and return to the terminal.</p>
</body></html>`); err != nil {
		LogWarning("Failed to write response: %v", err)
	}
}

// WaitForCode waits for the authorization code or the context to end
func (s *OAuthCallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case code := <-s.codeChan:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop stops the callback server
func (s *OAuthCallbackServer) Stop() error {
	if s.server != nil {
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("failed to stop callback server: %w", err)
		}
		s.wg.Wait()
	}
	return nil
}

// RedirectURL returns the address the consent screen should redirect to
func (s *OAuthCallbackServer) RedirectURL() string {
	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://%s/", s.listener.Addr().String())
}

// OpenURL opens the specified URL in the default browser
func (s *OAuthCallbackServer) OpenURL(url string) error {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("cannot open URL %s on this platform", url)
	}
	return err
}
