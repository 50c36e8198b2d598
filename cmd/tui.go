package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sonatafm/podium/internal/shared"
	"github.com/sonatafm/podium/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and playback.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/podium-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if v := r.config.Player.Volume; v > 0 {
		if err := r.deck.SetVolume(v); err != nil {
			fileLogger.Warn("failed to apply configured volume", "volume", v, "error", err)
		}
	}

	// A nil *live.Feed must not reach the model as a non-nil interface.
	var feed ui.LiveEvents
	if r.feed != nil {
		feed = r.feed
	}

	model := ui.NewModel(ctx, r.catalog, r.deck, r.center, feed)
	defer model.Close()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive console for the Sonata catalog",
		Action:  r.TUI,
	}
}
