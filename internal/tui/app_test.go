package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gamehub/internal/adapter"
	"github.com/mmcdole/gamehub/internal/config"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/service"
	"github.com/mmcdole/gamehub/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	games      []domain.GameRecord
	listErr    error
	addErr     error
	metaErr    error
	detailErr  error
	searches   map[string][]domain.StoreResult
	added      []domain.NewGame
	metaCalls  []string
	storeCalls []string
}

func (f *fakeRepo) LoadGames(ctx context.Context) ([]domain.GameRecord, error) {
	return f.games, f.listErr
}

func (f *fakeRepo) ListGames(ctx context.Context, offset, limit int) ([]domain.GameRecord, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	if offset >= len(f.games) {
		return nil, len(f.games), nil
	}
	end := min(offset+limit, len(f.games))
	return f.games[offset:end], len(f.games), nil
}

func (f *fakeRepo) AddGame(ctx context.Context, game domain.NewGame) (*domain.GameRecord, error) {
	f.added = append(f.added, game)
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &domain.GameRecord{ID: "new", Name: game.Name, IGDBID: game.IGDBID}, nil
}

func (f *fakeRepo) FetchMetadata(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	f.metaCalls = append(f.metaCalls, gameID)
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	dev := "Valve"
	return &domain.GameRecord{ID: gameID, Name: "Refreshed", Developer: &dev}, nil
}

func (f *fakeRepo) FetchGameDetails(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	for _, g := range f.games {
		if g.ID == gameID {
			return &g, nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (f *fakeRepo) SearchStore(ctx context.Context, query string, limit int) ([]domain.StoreResult, error) {
	f.storeCalls = append(f.storeCalls, query)
	return f.searches[query], nil
}

func sampleGames() []domain.GameRecord {
	return []domain.GameRecord{
		{ID: "1", Name: "Foo", IsInstalled: true},
		{ID: "2", Name: "Bar", IsInstalled: false},
	}
}

func newTestModel(t *testing.T, repo *fakeRepo, ch <-chan domain.Notification) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewModel(Deps{
		Library:       service.NewLibraryService(repo, 50, logger),
		Install:       service.NewInstallService(adapter.NewPlaceholderInstaller(logger), logger),
		Notifications: ch,
		Config:        config.DefaultConfig(),
		Logger:        logger,
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 45})
	return m
}

// loadedModel returns a model whose initial catalog load has completed
func loadedModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()
	m := newTestModel(t, repo, nil)
	msg := LoadGamesCmd(m.LibrarySvc, m.initTicket, time.Second)()
	m, _ = update(t, m, msg)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, keyMsg(k))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

// run executes a command and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func toastTexts(m Model) []string {
	var out []string
	for _, n := range m.Toasts.Items() {
		out = append(out, n.Message)
	}
	return out
}

func selectedGameID(t *testing.T, m Model) string {
	t.Helper()
	action, ok := m.Cards.SelectedAction(view.ActionDetails)
	require.True(t, ok)
	return action.GameID
}

func TestInitialLoadRendersCatalog(t *testing.T) {
	m := newTestModel(t, &fakeRepo{games: sampleGames()}, nil)
	assert.True(t, m.Loading())

	msg := LoadGamesCmd(m.LibrarySvc, m.initTicket, time.Second)()
	m, _ = update(t, m, msg)

	assert.False(t, m.Loading())
	assert.Equal(t, 2, m.Cards.Len())
	assert.Contains(t, view.Text(m.Sidebar), "All Games (2)")
	assert.Contains(t, view.Text(m.Sidebar), "Installed (1)")
}

func TestSwitchingToLibraryReloads(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})

	m, cmd := press(t, m, "2")
	assert.Nil(t, cmd)
	assert.Equal(t, domain.SectionStore, m.ViewState.Section)

	m, cmd = press(t, m, "3")
	assert.Nil(t, cmd)
	assert.Equal(t, domain.SectionSettings, m.ViewState.Section)

	m, cmd = press(t, m, "1")
	require.NotNil(t, cmd)
	assert.Equal(t, domain.SectionLibrary, m.ViewState.Section)
	assert.True(t, m.Loading())
	assert.IsType(t, GamesLoadedMsg{}, cmd())
}

func TestFilterRerendersSynchronously(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})

	m, cmd := press(t, m, "i")
	assert.Nil(t, cmd)
	assert.Equal(t, domain.FilterInstalled, m.ViewState.Filter)
	require.Equal(t, 1, m.Cards.Len())
	assert.Equal(t, "1", selectedGameID(t, m))

	m, _ = press(t, m, "u")
	require.Equal(t, 1, m.Cards.Len())
	assert.Equal(t, "2", selectedGameID(t, m))

	// Counts ignore the filter
	assert.Contains(t, view.Text(m.Sidebar), "All Games (2)")

	m, _ = press(t, m, "a")
	assert.Equal(t, 2, m.Cards.Len())
}

func TestSearchRerendersOnEveryKeystroke(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})

	m, _ = press(t, m, "/")
	require.True(t, m.SearchBar.Focused())

	m, _ = press(t, m, "B")
	assert.Equal(t, "b", m.ViewState.Query)
	require.Equal(t, 1, m.Cards.Len())
	assert.Equal(t, "2", selectedGameID(t, m))

	m = typeText(t, m, "zz")
	assert.True(t, m.Cards.IsEmpty())

	m, _ = press(t, m, "esc")
	assert.False(t, m.SearchBar.Focused())
	assert.Equal(t, "", m.ViewState.Query)
	assert.Equal(t, 2, m.Cards.Len())
}

func TestViewToggleKeepsSubset(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})
	m, _ = press(t, m, "i")

	m, cmd := press(t, m, "v")
	assert.Nil(t, cmd)
	assert.Equal(t, domain.ViewList, m.ViewState.View)
	assert.Equal(t, domain.ViewList, m.Cards.Mode())
	assert.Equal(t, 1, m.Cards.Len())
	assert.Equal(t, domain.FilterInstalled, m.ViewState.Filter)
}

func TestStaleLoadDoesNotOverwriteNewer(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	m, first := press(t, m, "r")
	m, second := press(t, m, "r")
	assert.Contains(t, toastTexts(m), "Refreshing library...")

	older := first()
	repo.games = []domain.GameRecord{{ID: "3", Name: "Baz"}}
	newer := second()

	m, _ = update(t, m, newer)
	m, _ = update(t, m, older)

	require.Equal(t, 1, m.Cards.Len())
	assert.Equal(t, "3", selectedGameID(t, m))
	assert.False(t, m.Loading())
}

func TestLoadFailureKeepsCatalog(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	repo.listErr = &domain.RejectedError{Message: "database offline"}
	m, cmd := press(t, m, "r")
	m, _ = run(t, m, cmd)

	assert.Equal(t, 2, m.Cards.Len())
	assert.Equal(t, "Failed to load games: database offline", toastTexts(m)[0])
}

func TestStaleStoreResultsAreDropped(t *testing.T) {
	repo := &fakeRepo{
		games: sampleGames(),
		searches: map[string][]domain.StoreResult{
			"zelda": {{ID: 1, Name: "Zelda"}},
			"mario": {{ID: 2, Name: "Mario"}},
		},
	}
	m := loadedModel(t, repo)
	m, _ = press(t, m, "2")

	first := m.searchStore("zelda")
	second := m.searchStore("mario")
	older, newer := first(), second()

	m, _ = update(t, m, newer)
	m, _ = update(t, m, older)

	require.Len(t, m.StoreResults(), 1)
	assert.Equal(t, "Mario", m.StoreResults()[0].Name)
	assert.False(t, m.Loading())
}

func TestStoreSearchFromInput(t *testing.T) {
	repo := &fakeRepo{games: sampleGames(), searches: map[string][]domain.StoreResult{}}
	m := loadedModel(t, repo)
	m, _ = press(t, m, "2")

	m, _ = press(t, m, "/")
	require.True(t, m.StoreBar.Focused())
	m = typeText(t, m, "zelda")
	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)

	assert.Equal(t, []string{"zelda"}, repo.storeCalls)
	assert.Empty(t, m.StoreResults())
	assert.Contains(t, m.StoreCards.View(), view.NoStoreResults)
}

func TestLeavingStoreDiscardsResults(t *testing.T) {
	repo := &fakeRepo{
		games:    sampleGames(),
		searches: map[string][]domain.StoreResult{"zelda": {{ID: 1, Name: "Zelda"}}},
	}
	m := loadedModel(t, repo)
	m, _ = press(t, m, "2")

	inFlight := m.searchStore("zelda")
	m, _ = press(t, m, "3")
	m, _ = update(t, m, inFlight())

	assert.Empty(t, m.StoreResults())
}

func TestAddGameFlowWithEnrichmentFailure(t *testing.T) {
	repo := &fakeRepo{games: sampleGames(), metaErr: &domain.APIError{Status: 502}}
	m := loadedModel(t, repo)

	m, _ = press(t, m, "n")
	require.True(t, m.Form.IsVisible())
	m = typeText(t, m, "Portal")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "71")
	m, cmd := press(t, m, "enter")
	assert.False(t, m.Form.IsVisible())

	m, reload := run(t, m, cmd)
	require.NotNil(t, reload)

	require.Len(t, repo.added, 1)
	assert.Equal(t, "Portal", repo.added[0].Name)
	require.NotNil(t, repo.added[0].IGDBID)
	assert.Equal(t, int64(71), *repo.added[0].IGDBID)
	assert.Nil(t, repo.added[0].FilePath)

	items := m.Toasts.Items()
	require.Len(t, items, 2)
	assert.Equal(t, domain.NotifyWarning, items[0].Kind)
	assert.Equal(t, "Failed to fetch game metadata", items[0].Message)
	assert.Equal(t, domain.NotifySuccess, items[1].Kind)
	assert.Equal(t, "Game added successfully!", items[1].Message)
}

func TestAddGameWithoutExternalIDSkipsEnrichment(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	m, _ = press(t, m, "n")
	m = typeText(t, m, "Homebrew")
	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)

	assert.Empty(t, repo.metaCalls)
	assert.Equal(t, []string{"Game added successfully!"}, toastTexts(m))
}

func TestAddGameFormRequiresName(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	m, _ = press(t, m, "n")
	m, cmd := press(t, m, "enter")

	assert.Nil(t, cmd)
	assert.True(t, m.Form.IsVisible())
	assert.Contains(t, m.Form.View(), "Game name is required")
	assert.Empty(t, repo.added)
}

func TestAddGameRejectionCarriesReason(t *testing.T) {
	repo := &fakeRepo{games: sampleGames(), addErr: &domain.RejectedError{Message: "Game already exists"}}
	m := loadedModel(t, repo)

	m, _ = press(t, m, "n")
	m = typeText(t, m, "Foo")
	m, cmd := press(t, m, "enter")
	m, reload := run(t, m, cmd)

	assert.Nil(t, reload)
	items := m.Toasts.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.NotifyError, items[0].Kind)
	assert.Equal(t, "Failed to add game: Game already exists", items[0].Message)
}

func TestAddFromStoreOutsideLibraryDoesNotReload(t *testing.T) {
	repo := &fakeRepo{
		games:    sampleGames(),
		searches: map[string][]domain.StoreResult{"zelda": {{ID: 1025, Name: "Zelda"}}},
	}
	m := loadedModel(t, repo)
	m, _ = press(t, m, "2")
	search := m.searchStore("zelda")
	m, _ = run(t, m, search)

	m, cmd := press(t, m, "enter")
	m, reload := run(t, m, cmd)

	assert.Nil(t, reload)
	require.Len(t, repo.added, 1)
	assert.Equal(t, int64(1025), *repo.added[0].IGDBID)
	assert.Equal(t, []string{"Game metadata updated!", "Zelda added to library!"}, toastTexts(m))
}

func TestInstallTogglesArePlaceholders(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})

	// Foo is installed, so its toggle uninstalls
	m, cmd := press(t, m, "x")
	m, next := run(t, m, cmd)
	assert.Nil(t, next)

	items := m.Toasts.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.NotifyInfo, items[0].Kind)
	assert.Equal(t, "Uninstall functionality coming soon!", items[0].Message)

	require.True(t, m.Cards.SelectGame("2"))
	m, cmd = press(t, m, "x")
	m, _ = run(t, m, cmd)
	assert.Equal(t, "Install functionality coming soon!", toastTexts(m)[0])
}

func TestDetailModalAndMetadataRefresh(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)
	require.True(t, m.Detail.IsVisible())
	assert.Equal(t, "1", m.Detail.Game().ID)

	m, cmd = press(t, m, "m")
	m, reload := run(t, m, cmd)
	require.NotNil(t, reload)
	assert.Equal(t, []string{"1"}, repo.metaCalls)
	assert.Equal(t, "Game metadata updated!", toastTexts(m)[0])
	assert.Equal(t, "Refreshed", m.Detail.Game().Name)

	m, _ = press(t, m, "esc")
	assert.False(t, m.Detail.IsVisible())
}

func TestDetailLoadFailureNotifies(t *testing.T) {
	repo := &fakeRepo{games: sampleGames(), detailErr: &domain.APIError{Status: 500}}
	m := loadedModel(t, repo)

	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)

	assert.False(t, m.Detail.IsVisible())
	assert.Equal(t, []string{"Failed to load game details"}, toastTexts(m))
}

func TestJumpPaletteWidensFilter(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})
	m, _ = press(t, m, "i")
	require.Equal(t, 1, m.Cards.Len())

	m, _ = press(t, m, "ctrl+k")
	require.True(t, m.Palette.IsVisible())
	m = typeText(t, m, "bar")
	m, _ = press(t, m, "enter")

	assert.False(t, m.Palette.IsVisible())
	assert.Equal(t, domain.FilterAll, m.ViewState.Filter)
	assert.Equal(t, "2", selectedGameID(t, m))
}

func TestNotificationsFromGatewayAreListened(t *testing.T) {
	ch := make(chan domain.Notification, 1)
	m := newTestModel(t, &fakeRepo{}, ch)

	m, cmd := update(t, m, NotificationMsg{Notification: domain.Notification{
		Kind:    domain.NotifyError,
		Message: "API call failed: HTTP error! status: 500",
	}})
	assert.Equal(t, []string{"API call failed: HTTP error! status: 500"}, toastTexts(m))

	require.NotNil(t, cmd)
	NewChannelNotifier(ch).Notify(domain.Notification{Kind: domain.NotifyInfo, Message: "next"})
	assert.Equal(t, NotificationMsg{Notification: domain.Notification{Kind: domain.NotifyInfo, Message: "next"}}, cmd())
}

func TestUnreadableCatalogIsNotified(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	repo.listErr = errors.New("failed to parse response data: unexpected end of JSON input")
	m, cmd := press(t, m, "r")
	m, _ = run(t, m, cmd)

	assert.Equal(t, 2, m.Cards.Len())
	items := m.Toasts.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, domain.NotifyError, items[0].Kind)
	assert.Equal(t, "Failed to load games", items[0].Message)
}

func TestTransportLoadFailureLeftToGateway(t *testing.T) {
	repo := &fakeRepo{games: sampleGames()}
	m := loadedModel(t, repo)

	repo.listErr = &domain.APIError{Status: 502}
	m, cmd := press(t, m, "r")
	m, _ = run(t, m, cmd)

	assert.Equal(t, []string{"Refreshing library..."}, toastTexts(m))
}

func TestMetadataRefreshFailureWarns(t *testing.T) {
	repo := &fakeRepo{games: sampleGames(), metaErr: &domain.APIError{Status: 500}}
	m := loadedModel(t, repo)

	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)
	require.True(t, m.Detail.IsVisible())

	m, cmd = press(t, m, "m")
	m, next := run(t, m, cmd)
	assert.Nil(t, next)

	items := m.Toasts.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.NotifyWarning, items[0].Kind)
	assert.Equal(t, "Failed to fetch game metadata", items[0].Message)
	assert.True(t, m.Detail.IsVisible())
}

func TestViewRendersSections(t *testing.T) {
	m := loadedModel(t, &fakeRepo{games: sampleGames()})
	out := m.View()
	assert.Contains(t, out, "Library")
	assert.Contains(t, out, "Foo")
	assert.Contains(t, out, "help")

	m, _ = press(t, m, "3")
	assert.Contains(t, m.View(), "Server: http://localhost:3000/api")

	m, _ = press(t, m, "?")
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "Jump to game")
	m, _ = press(t, m, "esc")
	assert.Equal(t, StateBrowsing, m.State)
}
