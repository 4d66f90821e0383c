package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lenscope/lenscope/internal/browser"
	"github.com/lenscope/lenscope/internal/config"
	"github.com/lenscope/lenscope/internal/lens"
	"github.com/lenscope/lenscope/internal/log"
	"github.com/lenscope/lenscope/internal/service"
	"github.com/lenscope/lenscope/internal/store"
	"github.com/lenscope/lenscope/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("lenscope %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.Null()
	}
	slog.SetDefault(logger)

	logger.Info("starting lenscope", "version", Version, "endpoint", cfg.API.Endpoint)

	client := lens.NewClient(cfg.API.Endpoint, cfg.API.AppAddress, logger)

	st, err := store.NewStore(config.DataPath(), cfg.API.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svcs := tui.Services{
		Feed:        service.NewFeedService(client, client, st, logger),
		Accounts:    service.NewAccountService(client, st, logger),
		Interaction: service.NewInteractionService(client, logger),
		Session:     service.NewSessionService(client, st, client, logger),
	}

	// Adopt a persisted session before the first fetch so viewer-relative
	// fields come back populated
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	restored := svcs.Session.Restore(ctx)
	cancel()
	if restored {
		logger.Info("restored session", "account", svcs.Session.AccountAddress())
	}

	opener := browser.NewOpener(logger)
	model := tui.NewApp(cfg, svcs, opener, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
