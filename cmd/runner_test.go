package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/notify"
	"github.com/sonatafm/podium/internal/player"
	"github.com/sonatafm/podium/internal/query"
	"github.com/sonatafm/podium/internal/resources"
	"github.com/sonatafm/podium/internal/shared"
	tu "github.com/sonatafm/podium/internal/testing"
	"github.com/urfave/cli/v3"
)

// testCatalog wires a catalog against an httptest server with a memory cache.
func testCatalog(t *testing.T, handler http.Handler) *resources.Catalog {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := shared.NewLogger(nil)
	client := api.NewClient(api.ClientOpts{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     logger,
	})
	cache := query.NewCache(query.NewMemoryStore(), logger)
	mutator := query.NewMutator(cache, notify.NewCenter(8), logger)

	return resources.NewCatalog(client, cache, mutator, logger)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			center := notify.NewCenter(4)
			deck := player.NewDeck(player.NewSilentSink(), player.NewSilentSink(), logger)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Center:     center,
				Deck:       deck,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.center != center {
				t.Error("expected center to be set")
			}
			if runner.deck != deck {
				t.Error("expected deck to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output == nil {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with nil center and deck builds defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.center == nil {
				t.Error("expected default notification center")
			}
			if runner.deck == nil {
				t.Error("expected default playback deck")
			}
		})

		t.Run("builds exporter only when catalog is present", func(t *testing.T) {
			bare := NewRunner(RunnerOpts{})
			if bare.exporter != nil {
				t.Error("expected nil exporter without a catalog")
			}

			catalog := testCatalog(t, http.NotFoundHandler())
			wired := NewRunner(RunnerOpts{Catalog: catalog})
			if wired.exporter == nil {
				t.Error("expected exporter to be built alongside catalog")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with empty configPath", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: ""})

			if runner.configPath != "" {
				t.Errorf("expected empty configPath, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlainln surrounds text with newlines", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlainln("done"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "\ndone\n" {
			t.Errorf("expected padded line, got %q", output.String())
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("guards", func(t *testing.T) {
		t.Run("requireCatalog without catalog", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if err := runner.requireCatalog(); err == nil {
				t.Error("expected error without catalog")
			}
		})

		t.Run("requireCatalog with catalog", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Catalog: testCatalog(t, http.NotFoundHandler())})

			if err := runner.requireCatalog(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("requireSession without session", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if err := runner.requireSession(); err == nil {
				t.Error("expected error without session store")
			}
		})
	})

	t.Run("SongsList", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path != "/songs/" {
				http.NotFound(w, req)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"count": 1,
				"next": null,
				"previous": null,
				"results": [{
					"id": "t-1",
					"title": "Daybreak",
					"artist_id": "a-1",
					"artist_name": "Aurora Finch",
					"genre": "electronic",
					"duration": 185,
					"is_published": true,
					"play_count": 42
				}]
			}`))
		})

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Catalog: testCatalog(t, handler),
			Output:  output,
		})

		app := &cli.Command{Name: "podium", Commands: runner.register()}
		if err := app.Run(context.Background(), []string{"podium", "songs", "list"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Daybreak") {
			t.Errorf("expected track title in output, got %q", result)
		}
		if !strings.Contains(result, "Aurora Finch") {
			t.Errorf("expected artist name in output, got %q", result)
		}
		if !strings.Contains(result, "1 of 1 songs") {
			t.Errorf("expected count summary, got %q", result)
		}
	})
}
