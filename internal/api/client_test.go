package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
	tu "github.com/sonatafm/podium/internal/testing"
)

func TestClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("Defaults", func(t *testing.T) {
			c := NewClient(ClientOpts{})
			if c.baseURL != "http://localhost:8000/api/v1" {
				t.Errorf("expected default base URL, got %s", c.baseURL)
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("Custom BaseURL", func(t *testing.T) {
			c := NewClient(ClientOpts{BaseURL: "https://api.sonata.fm/v1"})
			if c.BaseURL() != "https://api.sonata.fm/v1" {
				t.Errorf("expected custom base URL, got %s", c.BaseURL())
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Attaches Bearer Token", func(t *testing.T) {
			var gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			}))
			defer server.Close()

			c := NewClient(ClientOpts{
				BaseURL: server.URL,
				Token:   func() string { return "tok123" },
			})

			var result map[string]string
			if err := c.Get(context.Background(), "/health", &result); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotAuth != "Bearer tok123" {
				t.Errorf("expected bearer token header, got %q", gotAuth)
			}
		})

		t.Run("No Token Header When Logged Out", func(t *testing.T) {
			var gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				json.NewEncoder(w).Encode(map[string]string{})
			}))
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			if err := c.Get(context.Background(), "/genre/", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotAuth != "" {
				t.Errorf("expected no auth header, got %q", gotAuth)
			}
		})

		t.Run("Decodes Entity", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(models.Track{TrackID: "tr1", Title: "Night Drive"})
			}))
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			track, err := GetOne[models.Track](context.Background(), c, "/songs/tr1/")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if track.Title != "Night Drive" {
				t.Errorf("expected decoded title, got %s", track.Title)
			}
		})
	})

	t.Run("Error Taxonomy", func(t *testing.T) {
		newServer := func(status int, body string) *httptest.Server {
			return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				w.Write([]byte(body))
			}))
		}

		t.Run("401 Maps To ErrNotAuthenticated", func(t *testing.T) {
			server := newServer(http.StatusUnauthorized, `{"detail":"token expired"}`)
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			err := c.Get(context.Background(), "/account/me/", nil)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatal("expected APIError in chain")
			}
			if apiErr.Detail != "token expired" {
				t.Errorf("expected detail from body, got %q", apiErr.Detail)
			}
		})

		t.Run("404 Maps To ErrNotFound", func(t *testing.T) {
			server := newServer(http.StatusNotFound, `{"detail":"not found"}`)
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			err := c.Get(context.Background(), "/albums/missing/", nil)
			if !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("500 Maps To ErrAPIRequest", func(t *testing.T) {
			server := newServer(http.StatusInternalServerError, `{"message":"boom"}`)
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			err := c.Get(context.Background(), "/songs/", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "boom") {
				t.Errorf("expected message detail in error, got %v", err)
			}
		})

		t.Run("Transport Failure Surfaces", func(t *testing.T) {
			rt := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
			c := NewClient(ClientOpts{
				BaseURL:    "http://sonata.invalid",
				HTTPClient: &http.Client{Transport: rt},
			})

			err := c.Get(context.Background(), "/songs/", nil)
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected wrapped transport error, got %v", err)
			}
		})

		t.Run("Unreadable Body Fails Decode", func(t *testing.T) {
			rt := tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(&tu.FCloser{}),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil)
			c := NewClient(ClientOpts{
				BaseURL:    "http://sonata.invalid",
				HTTPClient: &http.Client{Transport: rt},
			})

			var out models.Track
			err := c.Get(context.Background(), "/songs/s1/", &out)
			if err == nil || !strings.Contains(err.Error(), "failed to decode response") {
				t.Errorf("expected decode error, got %v", err)
			}
		})
	})

	t.Run("Mutations", func(t *testing.T) {
		t.Run("Post Sends JSON Body", func(t *testing.T) {
			var gotBody map[string]any
			var gotMethod string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				json.NewDecoder(r.Body).Decode(&gotBody)
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(models.Album{AlbumID: "al1", Title: "Test LP"})
			}))
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			var created models.Album
			err := c.Post(context.Background(), "/albums/", models.AlbumUpload{Title: "Test LP", ArtistID: "ar1"}, &created)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotMethod != http.MethodPost {
				t.Errorf("expected POST, got %s", gotMethod)
			}
			if gotBody["title"] != "Test LP" {
				t.Errorf("expected title in body, got %v", gotBody)
			}
			if created.AlbumID != "al1" {
				t.Errorf("expected created album decoded, got %+v", created)
			}
		})

		t.Run("Delete Sends No Body", func(t *testing.T) {
			var gotMethod string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			c := NewClient(ClientOpts{BaseURL: server.URL})
			if err := c.Delete(context.Background(), "/songs/tr1/"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotMethod != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", gotMethod)
			}
		})
	})

	t.Run("Upload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("expected multipart form: %v", err)
			}
			if r.FormValue("title") != "Song" {
				t.Errorf("expected form field title, got %q", r.FormValue("title"))
			}
			file, header, err := r.FormFile("audio")
			if err != nil {
				t.Fatalf("expected audio file part: %v", err)
			}
			defer file.Close()
			if header.Filename != "song.mp3" {
				t.Errorf("expected filename song.mp3, got %s", header.Filename)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Track{TrackID: "tr9"})
		}))
		defer server.Close()

		c := NewClient(ClientOpts{BaseURL: server.URL})
		var created models.Track
		err := c.Upload(context.Background(), "/songs/",
			map[string]string{"title": "Song"},
			[]File{{Field: "audio", Filename: "song.mp3", Reader: strings.NewReader("ID3...")}},
			&created,
		)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.TrackID != "tr9" {
			t.Errorf("expected created track decoded, got %+v", created)
		}
	})

	t.Run("GetPage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") != "2" {
				t.Errorf("expected page=2, got %s", r.URL.RawQuery)
			}
			next := "/songs/?page=3"
			json.NewEncoder(w).Encode(models.Page[models.Track]{
				Count:   51,
				Next:    &next,
				Results: []models.Track{{TrackID: "tr1"}},
			})
		}))
		defer server.Close()

		c := NewClient(ClientOpts{BaseURL: server.URL})
		page, err := GetPage[models.Track](context.Background(), c, "/songs/", map[string]string{"page": "2"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page.Count != 51 || len(page.Results) != 1 {
			t.Errorf("unexpected page: %+v", page)
		}
		if !page.HasNext() {
			t.Error("expected next page link")
		}
	})

	t.Run("Query", func(t *testing.T) {
		if q := Query(nil); q != "" {
			t.Errorf("expected empty query, got %q", q)
		}
		if q := Query(map[string]string{"page": "1", "search": "jazz"}); q != "?page=1&search=jazz" {
			t.Errorf("expected sorted encoded query, got %q", q)
		}
		// blank values are dropped
		if q := Query(map[string]string{"search": ""}); q != "" {
			t.Errorf("expected empty query for blank values, got %q", q)
		}
	})
}
