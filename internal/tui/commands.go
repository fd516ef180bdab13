package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/service"
)

// Command factories for async operations

// LoadGamesCmd fetches the whole catalog. The ticket is issued by the
// catalog store before the command runs.
func LoadGamesCmd(svc *service.LibraryService, ticket uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		games, err := svc.LoadGames(ctx)
		if err != nil {
			return GamesLoadFailedMsg{Ticket: ticket, Err: err}
		}
		return GamesLoadedMsg{Ticket: ticket, Games: games}
	}
}

// SearchStoreCmd queries the external catalog
func SearchStoreCmd(svc *service.LibraryService, query string, limit int, generation uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results, err := svc.SearchStore(ctx, query, limit)
		return StoreResultsMsg{Generation: generation, Query: query, Results: results, Err: err}
	}
}

// AddGameCmd submits the add form
func AddGameCmd(svc *service.LibraryService, form service.AddGameForm, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		// Add and enrichment are sequential requests
		ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
		defer cancel()

		outcome, err := svc.AddGame(ctx, form)
		return GameAddedMsg{Name: form.Name, Outcome: outcome, Err: err}
	}
}

// AddFromStoreCmd adds a store result to the library
func AddFromStoreCmd(svc *service.LibraryService, result domain.StoreResult, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
		defer cancel()

		outcome, err := svc.AddFromStore(ctx, result)
		return GameAddedMsg{Name: result.Name, FromStore: true, Outcome: outcome, Err: err}
	}
}

// LoadDetailsCmd fetches a single game for the detail modal
func LoadDetailsCmd(svc *service.LibraryService, gameID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		game, err := svc.GameDetails(ctx, gameID)
		return GameDetailsMsg{GameID: gameID, Game: game, Err: err}
	}
}

// RefreshMetadataCmd asks the backend to re-fetch external metadata
func RefreshMetadataCmd(svc *service.LibraryService, gameID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		game, err := svc.RefreshMetadata(ctx, gameID)
		return MetadataUpdatedMsg{GameID: gameID, Game: game, Err: err}
	}
}

// InstallCmd runs an install or uninstall request for a game
func InstallCmd(svc *service.InstallService, action service.InstallAction, gameID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := svc.Run(ctx, action, gameID)
		return InstallDoneMsg{Action: action, GameID: gameID, Err: err}
	}
}

// ListenNotificationsCmd waits for the next notification raised off the
// update loop. The model re-arms it after every delivery.
func ListenNotificationsCmd(ch <-chan domain.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Notification: n}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}
