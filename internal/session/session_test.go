package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
	"golang.org/x/oauth2"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newTestManager(t *testing.T, apiBase, tokenURL string) (*Manager, *Store) {
	t.Helper()

	store := NewStore(newTestDB(t))
	auth := shared.AuthConfig{
		ClientID:     "podium-console",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:3000/callback",
		AuthURL:      "http://localhost:8000/o/authorize/",
		TokenURL:     tokenURL,
	}

	manager := NewManager(store, nil, auth, shared.NewLogger(io.Discard))
	if apiBase != "" {
		client := api.NewClient(api.ClientOpts{
			BaseURL: apiBase,
			Token:   manager.AccessToken,
			Logger:  shared.NewLogger(io.Discard),
		})
		manager.api = client
	}

	return manager, store
}

func oauthToken(access, refresh string) *oauth2.Token {
	return &oauth2.Token{AccessToken: access, RefreshToken: refresh}
}

// signedToken mints an HS256 token with the given expiry for claim parsing.
func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": "u1", "exp": expiry.Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return raw
}

func TestStore(t *testing.T) {
	store := NewStore(newTestDB(t))

	t.Run("SetAndGet", func(t *testing.T) {
		if err := store.Set(keyAccessToken, "tok-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		value, err := store.Get(keyAccessToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if value != "tok-1" {
			t.Errorf("expected tok-1, got %s", value)
		}
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		store.Set(keyAccessToken, "tok-2")

		if value, _ := store.Get(keyAccessToken); value != "tok-2" {
			t.Errorf("expected tok-2, got %s", value)
		}
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		if _, err := store.Get("absent"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteMissingKeyIsFine", func(t *testing.T) {
		if err := store.Delete("absent"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("ClearRemovesCredentials", func(t *testing.T) {
		store.Set(keyAccessToken, "a")
		store.Set(keyRefreshToken, "r")
		store.Set(keyCurrentUserID, "u")

		if err := store.Clear(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		for _, key := range []string{keyAccessToken, keyRefreshToken, keyCurrentUserID} {
			if _, err := store.Get(key); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected %s cleared, got %v", key, err)
			}
		}
	})
}

func TestManagerTokens(t *testing.T) {
	t.Run("AccessTokenEmptyWhenLoggedOut", func(t *testing.T) {
		manager, _ := newTestManager(t, "", "")

		if manager.AccessToken() != "" {
			t.Error("expected empty token before login")
		}

		if manager.Authenticated() {
			t.Error("expected not authenticated before login")
		}
	})

	t.Run("SaveTokenPersists", func(t *testing.T) {
		manager, store := newTestManager(t, "", "")

		err := manager.SaveToken(oauthToken("access-1", "refresh-1"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if manager.AccessToken() != "access-1" {
			t.Errorf("expected access-1, got %s", manager.AccessToken())
		}

		if refresh, _ := store.Get(keyRefreshToken); refresh != "refresh-1" {
			t.Errorf("expected refresh-1, got %s", refresh)
		}
	})

	t.Run("SaveTokenRejectsEmpty", func(t *testing.T) {
		manager, _ := newTestManager(t, "", "")

		if err := manager.SaveToken(nil); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("TokenExpiryReadsClaim", func(t *testing.T) {
		manager, store := newTestManager(t, "", "")
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		store.Set(keyAccessToken, signedToken(t, expiry))

		got, err := manager.TokenExpiry()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !got.Equal(expiry) {
			t.Errorf("expected %v, got %v", expiry, got)
		}
	})

	t.Run("TokenExpiryWithoutLogin", func(t *testing.T) {
		manager, _ := newTestManager(t, "", "")

		if _, err := manager.TokenExpiry(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("LogoutClearsEverything", func(t *testing.T) {
		manager, _ := newTestManager(t, "", "")
		manager.SaveToken(oauthToken("access-1", "refresh-1"))

		if err := manager.Logout(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if manager.Authenticated() {
			t.Error("expected logged out")
		}
	})
}

func TestManagerRefresh(t *testing.T) {
	t.Run("RefreshWithoutTokenFails", func(t *testing.T) {
		manager, _ := newTestManager(t, "", "")

		if err := manager.Refresh(context.Background()); !errors.Is(err, shared.ErrNoRefreshToken) {
			t.Errorf("expected ErrNoRefreshToken, got %v", err)
		}
	})

	t.Run("RefreshStoresNewToken", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access-2",
				"refresh_token": "refresh-2",
				"token_type":    "Bearer",
				"expires_in":    3600,
			})
		}))
		defer server.Close()

		manager, store := newTestManager(t, "", server.URL)
		store.Set(keyRefreshToken, "refresh-1")

		if err := manager.Refresh(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if manager.AccessToken() != "access-2" {
			t.Errorf("expected rotated access token, got %s", manager.AccessToken())
		}

		if refresh, _ := store.Get(keyRefreshToken); refresh != "refresh-2" {
			t.Errorf("expected rotated refresh token, got %s", refresh)
		}
	})

	t.Run("RefreshFailureSurfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		manager, store := newTestManager(t, "", server.URL)
		store.Set(keyRefreshToken, "refresh-1")

		if err := manager.Refresh(context.Background()); !errors.Is(err, shared.ErrRefreshFailed) {
			t.Errorf("expected ErrRefreshFailed, got %v", err)
		}
	})

	t.Run("EnsureFreshSkipsValidToken", func(t *testing.T) {
		manager, store := newTestManager(t, "", "")
		store.Set(keyAccessToken, signedToken(t, time.Now().Add(time.Hour)))

		if err := manager.EnsureFresh(context.Background()); err != nil {
			t.Errorf("expected no error for fresh token, got %v", err)
		}
	})

	t.Run("EnsureFreshRefreshesExpiring", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"access_token": "access-2", "token_type": "Bearer"})
		}))
		defer server.Close()

		manager, store := newTestManager(t, "", server.URL)
		store.Set(keyAccessToken, signedToken(t, time.Now().Add(5*time.Second)))
		store.Set(keyRefreshToken, "refresh-1")

		if err := manager.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if manager.AccessToken() != "access-2" {
			t.Errorf("expected refreshed token, got %s", manager.AccessToken())
		}
	})

	t.Run("EnsureFreshExpiredWithoutRefreshToken", func(t *testing.T) {
		manager, store := newTestManager(t, "", "")
		store.Set(keyAccessToken, signedToken(t, time.Now().Add(-time.Minute)))

		err := manager.EnsureFresh(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestManagerCurrentUser(t *testing.T) {
	t.Run("ResolvesAccount", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/account/me/" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.User{UserID: "u1", Email: "op@sonata.fm"})
		}))
		defer server.Close()

		manager, _ := newTestManager(t, server.URL, "")
		manager.SaveToken(oauthToken("access-1", ""))

		user, err := manager.CurrentUser(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if user.UserID != "u1" {
			t.Errorf("expected u1, got %s", user.UserID)
		}

		if manager.CurrentUserID() != "u1" {
			t.Errorf("expected cached user id, got %s", manager.CurrentUserID())
		}
	})

	t.Run("RejectedTokenClearsSession", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		manager, _ := newTestManager(t, server.URL, "")
		manager.SaveToken(oauthToken("stale", "refresh-1"))

		_, err := manager.CurrentUser(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}

		if manager.Authenticated() {
			t.Error("expected credentials cleared after rejection")
		}
	})

	t.Run("LoggedOutShortCircuits", func(t *testing.T) {
		manager, _ := newTestManager(t, "", "")

		if _, err := manager.CurrentUser(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}
