package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/api"
	"github.com/sonatafm/podium/internal/live"
	"github.com/sonatafm/podium/internal/notify"
	"github.com/sonatafm/podium/internal/player"
	"github.com/sonatafm/podium/internal/repositories"
	"github.com/sonatafm/podium/internal/resources"
	"github.com/sonatafm/podium/internal/session"
	"github.com/sonatafm/podium/internal/shared"
	"github.com/sonatafm/podium/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *api.Client
	catalog    *resources.Catalog
	session    *session.Manager
	deck       *player.Deck
	center     *notify.Center
	feed       *live.Feed
	snapshots  *repositories.SnapshotRepository
	exporter   *tasks.ExportEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *api.Client
	Catalog    *resources.Catalog
	Session    *session.Manager
	Deck       *player.Deck
	Center     *notify.Center
	Feed       *live.Feed
	Snapshots  *repositories.SnapshotRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Center == nil {
		opts.Center = notify.NewCenter(16)
	}
	if opts.Deck == nil {
		opts.Deck = player.NewDeck(player.NewSilentSink(), player.NewSilentSink(), opts.Logger)
	}

	var exporter *tasks.ExportEngine
	if opts.Catalog != nil {
		exporter = tasks.NewExportEngine(opts.Catalog, opts.Snapshots, opts.Logger)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		catalog:    opts.Catalog,
		session:    opts.Session,
		deck:       opts.Deck,
		center:     opts.Center,
		feed:       opts.Feed,
		snapshots:  opts.Snapshots,
		exporter:   exporter,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, songsCommand, albumsCommand, podcastsCommand,
		usersCommand, subsCommand, liveCommand, apiCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireCatalog guards actions that need the catalog wiring from main.
func (r *Runner) requireCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized, run 'podium setup database' and check config.toml", shared.ErrMissingConfig)
	}
	return nil
}

// requireSession guards actions that need the local session database.
func (r *Runner) requireSession() error {
	if r.session == nil {
		return fmt.Errorf("%w: session store not initialized, run 'podium setup database'", shared.ErrMissingConfig)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
