package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/live"
	"github.com/sonatafm/podium/internal/notify"
	"github.com/sonatafm/podium/internal/query"
	"github.com/sonatafm/podium/internal/repositories"
	"github.com/sonatafm/podium/internal/resources"
	"github.com/sonatafm/podium/internal/session"
	"github.com/sonatafm/podium/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	opts := RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	}

	timeout := time.Duration(config.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// The client and session manager reference each other: requests carry the
	// session's access token, and the manager resolves the current account
	// through the client. The token closure breaks the construction cycle.
	var sessionManager *session.Manager
	tokens := func() string {
		if sessionManager == nil {
			return ""
		}
		return sessionManager.AccessToken()
	}
	client := api.NewClient(api.ClientOpts{
		BaseURL:           config.API.BaseURL,
		HTTPClient:        &http.Client{Timeout: timeout},
		Token:             tokens,
		RequestsPerSecond: config.API.RequestsPerSecond,
		Logger:            logger,
	})
	opts.API = client

	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		opts.Snapshots = repositories.NewSnapshotRepository(db)

		sessionManager = session.NewManager(session.NewStore(db), client, config.Auth, logger)
		opts.Session = sessionManager
	} else {
		logger.Debug("local database unavailable", "path", config.Database.Path, "error", err)
	}

	var store query.Store = query.NewMemoryStore()
	if config.Cache.Backend == "redis" {
		if redisStore, err := query.DialRedis(context.Background(), config.Cache.RedisAddr, config.Cache.RedisDB); err == nil {
			store = redisStore
		} else {
			logger.Warn("redis unavailable, falling back to in-memory cache", "addr", config.Cache.RedisAddr, "error", err)
		}
	}

	cache := query.NewCache(store, logger)
	center := notify.NewCenter(16)
	mutator := query.NewMutator(cache, center, logger)
	opts.Center = center
	opts.Catalog = resources.NewCatalog(client, cache, mutator, logger)

	if config.API.WSURL != "" {
		opts.Feed = live.NewFeed(config.API.WSURL, cache, logger)
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "podium",
		Usage:    "Operator console for the Sonata streaming platform",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrNotAuthenticated):
			logger.Error("not logged in, run 'podium auth login'")
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
