package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("tui failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to the UI; logs go to LOG_FILE or nowhere.
	logger, closeLog, err := logging.NewFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.SetDefault(logger)

	ctx, cancel := view.DbCtx()
	svc, cleanup, err := app.NewService(ctx, cfg, logger)
	cancel()

	if err != nil {
		return err
	}
	defer cleanup()

	var screen view.View = view.NewLedgerModel(svc)

	p := tea.NewProgram(screen, tea.WithAltScreen())

	unsubscribe := svc.Subscribe(view.Notify(p))
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
