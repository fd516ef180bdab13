package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gamehub/internal/domain"
)

// InstallAction is what toggling a game's install state does
type InstallAction string

const (
	ActionInstall   InstallAction = "install"
	ActionUninstall InstallAction = "uninstall"
)

// ActionFor returns the single action available for a game
func ActionFor(game domain.GameRecord) InstallAction {
	if game.IsInstalled {
		return ActionUninstall
	}
	return ActionInstall
}

// InstallService orchestrates install and uninstall
type InstallService struct {
	installer domain.Installer
	logger    *slog.Logger
}

// NewInstallService creates a new install service
func NewInstallService(installer domain.Installer, logger *slog.Logger) *InstallService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstallService{
		installer: installer,
		logger:    logger,
	}
}

// Toggle installs an uninstalled game or uninstalls an installed one
func (s *InstallService) Toggle(ctx context.Context, game domain.GameRecord) (InstallAction, error) {
	action := ActionFor(game)
	return action, s.Run(ctx, action, game.ID)
}

// Run performs action on the game with the given id
func (s *InstallService) Run(ctx context.Context, action InstallAction, gameID string) error {
	s.logger.Info("install action requested", "action", action, "gameID", gameID)

	var err error
	switch action {
	case ActionUninstall:
		err = s.installer.Uninstall(ctx, gameID)
	default:
		err = s.installer.Install(ctx, gameID)
	}

	if err != nil {
		s.logger.Debug("install action did not complete", "action", action, "gameID", gameID, "error", err)
	}
	return err
}
