// Package server runs the short-lived localhost HTTP server that catches the
// OAuth2 authorization callback during login.
//
// When the operator runs the login command, a server starts on the configured
// port, handles exactly one callback, sends the exchanged token through a
// channel, and is shut down by the caller. The state parameter is checked
// against the value minted for the login attempt before any code exchange.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/oauth2"
)

// CallbackResult carries the outcome of the authorization flow.
type CallbackResult struct {
	Token *oauth2.Token
	err   error
}

func (r CallbackResult) Error() error { return r.err }

// CallbackServer serves the OAuth2 redirect endpoint for one login attempt.
type CallbackServer struct {
	config *oauth2.Config
	state  string
	logger *log.Logger

	mu      sync.Mutex
	handled bool
	once    sync.Once
	results chan CallbackResult

	srv *http.Server
	ln  net.Listener
}

// NewCallbackServer builds a server bound to addr, e.g. "localhost:3000". The
// state token must match the one embedded in the authorization URL.
func NewCallbackServer(addr string, config *oauth2.Config, state string, logger *log.Logger) *CallbackServer {
	s := &CallbackServer{
		config:  config,
		state:   state,
		logger:  logger,
		results: make(chan CallbackResult, 1),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/health", s.handleHealth)
	r.Get("/callback", s.handleCallback)

	s.srv = &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Start listens in a background goroutine. It returns once the listener is
// bound so the browser can be opened without racing the server.
func (s *CallbackServer) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind callback server: %w", err)
	}
	s.ln = ln

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("callback server stopped", "error", err)
		}
	}()

	s.logger.Debug("callback server listening", "addr", s.srv.Addr)
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr returns the bound listen address, useful when the configured port is 0.
func (s *CallbackServer) Addr() string {
	if s.ln == nil {
		return s.srv.Addr
	}

	return s.ln.Addr().String()
}

// Result returns the channel that receives exactly one [CallbackResult].
func (s *CallbackServer) Result() <-chan CallbackResult {
	return s.results
}

func (s *CallbackServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// handleCallback validates state, exchanges the code, and reports the result.
// Repeat requests are rejected so a replayed redirect cannot race the first.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.handled {
		s.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	s.handled = true
	s.mu.Unlock()

	if state := r.URL.Query().Get("state"); state != s.state {
		s.send(CallbackResult{err: fmt.Errorf("state mismatch in callback")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		s.send(CallbackResult{err: fmt.Errorf("authorization denied: %s: %s", errParam, errDesc)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := s.config.Exchange(r.Context(), code)
	if err != nil {
		s.send(CallbackResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	s.send(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// send delivers the result exactly once and closes the channel.
func (s *CallbackServer) send(result CallbackResult) {
	s.once.Do(func() {
		s.results <- result
		close(s.results)
	})
}

func (s *CallbackServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Sonata Console</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #0f0f14; }
        .container { text-align: center; background: #1c1c24; padding: 2rem;
                     border-radius: 8px; color: #e8e8ec; }
        h1 { color: #7aa2f7; margin: 0 0 1rem 0; }
        p { color: #9a9aa5; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Login complete</h1>
        <p>You can close this window and return to the console.</p>
    </div>
</body>
</html>
`
