package adapter

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gamehub/internal/domain"
)

// PlaceholderInstaller satisfies domain.Installer until the backend exposes
// install endpoints. Every call completes with domain.ErrNotImplemented.
type PlaceholderInstaller struct {
	logger *slog.Logger
}

// NewPlaceholderInstaller creates a new placeholder installer
func NewPlaceholderInstaller(logger *slog.Logger) *PlaceholderInstaller {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceholderInstaller{logger: logger}
}

// Install reports that installation is not available yet
func (p *PlaceholderInstaller) Install(ctx context.Context, gameID string) error {
	p.logger.Debug("install requested", "gameID", gameID)
	return domain.ErrNotImplemented
}

// Uninstall reports that uninstallation is not available yet
func (p *PlaceholderInstaller) Uninstall(ctx context.Context, gameID string) error {
	p.logger.Debug("uninstall requested", "gameID", gameID)
	return domain.ErrNotImplemented
}
