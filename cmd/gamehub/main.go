package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gamehub/internal/adapter"
	"github.com/mmcdole/gamehub/internal/catalog"
	"github.com/mmcdole/gamehub/internal/config"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/gameapi"
	"github.com/mmcdole/gamehub/internal/log"
	"github.com/mmcdole/gamehub/internal/search"
	"github.com/mmcdole/gamehub/internal/service"
	"github.com/mmcdole/gamehub/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "gamehub",
		Short:         "Browse and manage a GameHub library from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v, cfgFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.config/gamehub/config.yaml)")
	flags.String("server", "", "backend API base URL")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("server.url", flags.Lookup("server"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	return cmd
}

func run(v *viper.Viper, cfgFile string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("gamehub needs an interactive terminal")
	}

	// Load configuration
	cfg, err := config.LoadConfig(v, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting gamehub", "version", Version, "server", cfg.BaseURL())

	// Gateway notifications reach the TUI through this channel
	notifications := make(chan domain.Notification, 16)

	client := gameapi.NewClient(cfg.BaseURL(), gameapi.Options{
		Timeout:          cfg.Server.Timeout,
		BreakerThreshold: cfg.Server.BreakerThreshold,
		Notifier:         tui.NewChannelNotifier(notifications),
		Logger:           logger,
	})

	// Create services
	librarySvc := service.NewLibraryService(client, cfg.Server.PageSize, logger)
	installSvc := service.NewInstallService(adapter.NewPlaceholderInstaller(logger), logger)

	model := tui.NewModel(tui.Deps{
		Library:       librarySvc,
		Install:       installSvc,
		Search:        search.NewService(logger),
		Catalog:       catalog.NewStore(logger),
		Notifications: notifications,
		Config:        cfg,
		Logger:        logger,
	})

	// Run the TUI
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
