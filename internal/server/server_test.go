package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sonatafm/podium/internal/shared"
	"golang.org/x/oauth2"
)

func newTestCallbackServer(t *testing.T, tokenURL string) (*CallbackServer, *httptest.Server) {
	t.Helper()

	config := &oauth2.Config{
		ClientID:     "podium-console",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}

	s := NewCallbackServer("localhost:0", config, "state-123", shared.NewLogger(io.Discard))
	ts := httptest.NewServer(s.srv.Handler)
	t.Cleanup(ts.Close)
	return s, ts
}

func tokenEndpoint(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token request: %v", err)
		}

		if code := r.FormValue("code"); code != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCallbackServer(t *testing.T) {
	t.Run("ExchangesCodeForToken", func(t *testing.T) {
		s, ts := newTestCallbackServer(t, tokenEndpoint(t).URL)

		resp, err := http.Get(ts.URL + "/callback?state=state-123&code=good-code")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}

		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "Login complete") {
			t.Error("expected success page in response")
		}

		select {
		case result := <-s.Result():
			if result.Error() != nil {
				t.Fatalf("expected no error, got %v", result.Error())
			}

			if result.Token.AccessToken != "access-1" {
				t.Errorf("expected access-1, got %s", result.Token.AccessToken)
			}

			if result.Token.RefreshToken != "refresh-1" {
				t.Errorf("expected refresh-1, got %s", result.Token.RefreshToken)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for callback result")
		}
	})

	t.Run("RejectsStateMismatch", func(t *testing.T) {
		s, ts := newTestCallbackServer(t, tokenEndpoint(t).URL)

		resp, err := http.Get(ts.URL + "/callback?state=forged&code=good-code")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}

		result := <-s.Result()
		if result.Error() == nil {
			t.Error("expected error result for state mismatch")
		}
	})

	t.Run("ReportsDeniedAuthorization", func(t *testing.T) {
		s, ts := newTestCallbackServer(t, tokenEndpoint(t).URL)

		resp, _ := http.Get(ts.URL + "/callback?state=state-123&error=access_denied&error_description=operator+declined")
		resp.Body.Close()

		result := <-s.Result()
		if result.Error() == nil || !strings.Contains(result.Error().Error(), "access_denied") {
			t.Errorf("expected denial error, got %v", result.Error())
		}
	})

	t.Run("HandlesCallbackOnlyOnce", func(t *testing.T) {
		_, ts := newTestCallbackServer(t, tokenEndpoint(t).URL)

		first, _ := http.Get(ts.URL + "/callback?state=state-123&code=good-code")
		first.Body.Close()

		second, _ := http.Get(ts.URL + "/callback?state=state-123&code=good-code")
		second.Body.Close()

		if second.StatusCode != http.StatusBadRequest {
			t.Errorf("expected replayed callback rejected, got %d", second.StatusCode)
		}
	})

	t.Run("FailedExchangeSurfaces", func(t *testing.T) {
		s, ts := newTestCallbackServer(t, tokenEndpoint(t).URL)

		resp, _ := http.Get(ts.URL + "/callback?state=state-123&code=bad-code")
		resp.Body.Close()

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}

		result := <-s.Result()
		if result.Error() == nil {
			t.Error("expected exchange failure in result")
		}
	})

	t.Run("HealthEndpoint", func(t *testing.T) {
		_, ts := newTestCallbackServer(t, "")

		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("StartBindsAndShutsDown", func(t *testing.T) {
		config := &oauth2.Config{ClientID: "podium-console"}
		s := NewCallbackServer("localhost:0", config, "state-123", shared.NewLogger(io.Discard))

		if err := s.Start(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		resp, err := http.Get("http://" + s.Addr() + "/health")
		if err != nil {
			t.Fatalf("expected reachable server, got %v", err)
		}
		resp.Body.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	})
}
