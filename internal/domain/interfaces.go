package domain

import "context"

// GameRepository: network operations against the backend.
// Implemented by the gameapi client.
type GameRepository interface {
	LoadGames(ctx context.Context) ([]GameRecord, error)
	ListGames(ctx context.Context, offset, limit int) ([]GameRecord, int, error)
	AddGame(ctx context.Context, game NewGame) (*GameRecord, error)
	FetchMetadata(ctx context.Context, gameID string) (*GameRecord, error)
	FetchGameDetails(ctx context.Context, gameID string) (*GameRecord, error)
	SearchStore(ctx context.Context, query string, limit int) ([]StoreResult, error)
}

// Installer manages local installation of catalog games
type Installer interface {
	Install(ctx context.Context, gameID string) error
	Uninstall(ctx context.Context, gameID string) error
}

// NotificationKind is the severity of a user-visible notification
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a transient message shown to the user
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Notifier surfaces notifications to the user
type Notifier interface {
	Notify(n Notification)
}
