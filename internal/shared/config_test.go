package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./podium.db" {
			t.Errorf("expected database path ./podium.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.API.BaseURL != "http://localhost:8000/api/v1" {
			t.Errorf("expected API base URL http://localhost:8000/api/v1, got %s", config.API.BaseURL)
		}

		if config.Cache.Backend != "memory" {
			t.Errorf("expected memory cache backend, got %s", config.Cache.Backend)
		}

		if config.Player.Volume != 0.8 {
			t.Errorf("expected default volume 0.8, got %f", config.Player.Volume)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[api]
base_url = "https://api.sonata.fm/v1"
ws_url = "wss://api.sonata.fm/ws/live"
timeout_seconds = 15
requests_per_second = 4.0

[cache]
backend = "redis"
redis_addr = "cache.internal:6379"

[database]
path = "/tmp/ops.db"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://api.sonata.fm/v1" {
			t.Errorf("expected custom base URL, got %s", config.API.BaseURL)
		}

		if config.Cache.Backend != "redis" {
			t.Errorf("expected redis backend, got %s", config.Cache.Backend)
		}

		if config.API.TimeoutSeconds != 15 {
			t.Errorf("expected timeout 15, got %d", config.API.TimeoutSeconds)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/config.toml")
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("[api\nbroken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}
