package tui

import (
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/service"
)

// Message types for the TUI

// GamesLoadedMsg carries a catalog load; Ticket orders it against other loads
type GamesLoadedMsg struct {
	Ticket uint64
	Games  []domain.GameRecord
}

// GamesLoadFailedMsg signals a failed catalog load
type GamesLoadFailedMsg struct {
	Ticket uint64
	Err    error
}

// StoreResultsMsg carries a store search response. Generation identifies
// the search that produced it.
type StoreResultsMsg struct {
	Generation uint64
	Query      string
	Results    []domain.StoreResult
	Err        error
}

// GameAddedMsg signals the end of an add flow (add, then enrich)
type GameAddedMsg struct {
	Name      string
	FromStore bool
	Outcome   *service.AddOutcome
	Err       error
}

// GameDetailsMsg carries a fetched game for the detail modal
type GameDetailsMsg struct {
	GameID string
	Game   *domain.GameRecord
	Err    error
}

// MetadataUpdatedMsg signals a finished metadata refresh
type MetadataUpdatedMsg struct {
	GameID string
	Game   *domain.GameRecord
	Err    error
}

// InstallDoneMsg signals a finished install or uninstall request
type InstallDoneMsg struct {
	Action service.InstallAction
	GameID string
	Err    error
}

// NotificationMsg carries a notification raised outside the update loop
type NotificationMsg struct {
	Notification domain.Notification
}

// TickMsg is a general tick message for animations and expiry
type TickMsg struct{}
