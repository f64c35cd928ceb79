package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/desertthunder/memegacha/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal roller backed by the device database.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/memegacha-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	d, err := r.openDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	model := ui.NewModel(ctx, ui.ModelOpts{
		Roller: d.roller,
		Source: r.catalogSource(),
		Logger: r.logger,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
