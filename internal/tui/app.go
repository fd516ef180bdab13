package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gamehub/internal/catalog"
	"github.com/mmcdole/gamehub/internal/config"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/search"
	"github.com/mmcdole/gamehub/internal/service"
	"github.com/mmcdole/gamehub/internal/tui/components"
	"github.com/mmcdole/gamehub/internal/view"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

const (
	// Footer line
	ChromeHeight = 1

	// Section title and search bar above the cards
	HeaderHeight = 2

	tickInterval = 100 * time.Millisecond
)

// Notification texts
const (
	msgGameAdded        = "Game added successfully!"
	msgAddFailed        = "Failed to add game"
	msgEnrichFailed     = "Failed to fetch game metadata"
	msgMetadataUpdated  = "Game metadata updated!"
	msgStoreFailed      = "Store search failed"
	msgDetailsFailed    = "Failed to load game details"
	msgLoadFailed       = "Failed to load games"
	msgRefreshing       = "Refreshing library..."
	msgInstallSoon      = "Install functionality coming soon!"
	msgUninstallSoon    = "Uninstall functionality coming soon!"
	msgInstallFailed    = "Failed to install game"
	msgUninstallFailed  = "Failed to uninstall game"
	msgPaletteNoCatalog = "Library is still loading"
)

// Deps are the collaborators the model is built from
type Deps struct {
	Library       *service.LibraryService
	Install       *service.InstallService
	Search        *search.Service
	Catalog       *catalog.Store
	Notifications <-chan domain.Notification
	Config        *config.Config
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State     ApplicationState
	Ready     bool
	ViewState domain.ViewState

	// Services
	LibrarySvc *service.LibraryService
	InstallSvc *service.InstallService
	SearchSvc  *search.Service
	Catalog    *catalog.Store

	// UI Components
	Cards      components.CardView // Library catalog
	StoreCards components.CardView // Store search results
	SearchBar  components.SearchBar
	StoreBar   components.SearchBar
	Detail     components.DetailModal
	Form       components.AddGameForm
	Palette    components.Palette

	// Rendered trees; actions are always read from the latest render
	Sidebar  view.Node
	Settings view.Node

	// Store search
	storeResults   []domain.StoreResult
	storeGen       uint64
	storeQuery     string
	storeSearching bool // Current generation still in flight

	// Jump palette index, rebuilt when the catalog changes
	index *search.Index

	// Dimensions
	Width  int
	Height int

	// UI state
	Toasts       Toasts
	pending      int // Outstanding requests
	SpinnerFrame int

	initTicket    uint64
	notifications <-chan domain.Notification
	cfg           *config.Config
	logger        *slog.Logger
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := deps.Catalog
	if store == nil {
		store = catalog.NewStore(logger)
	}
	searchSvc := deps.Search
	if searchSvc == nil {
		searchSvc = search.NewService(logger)
	}

	mode := domain.ParseViewMode(cfg.UI.DefaultView)
	m := Model{
		ViewState: domain.ViewState{
			Filter:  domain.FilterAll,
			Section: domain.SectionLibrary,
			View:    mode,
		},
		LibrarySvc:    deps.Library,
		InstallSvc:    deps.Install,
		SearchSvc:     searchSvc,
		Catalog:       store,
		Cards:         components.NewCardView(mode, cfg.UI.GridColumns),
		StoreCards:    components.NewCardView(mode, cfg.UI.GridColumns),
		SearchBar:     components.NewSearchBar("/ ", "Search library..."),
		StoreBar:      components.NewSearchBar("Store › ", "Search for games to add..."),
		Detail:        components.NewDetailModal(),
		Form:          components.NewAddGameForm(),
		Palette:       components.NewPalette(),
		Settings:      view.RenderSettings(settingsOf(cfg)),
		index:         search.NewIndex(nil),
		Toasts:        NewToasts(cfg.UI.NotificationTTL),
		notifications: deps.Notifications,
		cfg:           cfg,
		logger:        logger,
	}
	m.render()
	m.StoreCards.SetTree(view.RenderStoreResults(nil))

	// Initial load, issued by Init
	m.initTicket = store.Begin()
	m.pending = 1
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadGamesCmd(m.LibrarySvc, m.initTicket, m.cfg.Server.Timeout),
		TickCmd(tickInterval),
		ListenNotificationsCmd(m.notifications),
	)
}

// Loading reports whether any request is outstanding
func (m Model) Loading() bool {
	return m.pending > 0
}

// StoreResults returns the results of the latest store search
func (m Model) StoreResults() []domain.StoreResult {
	return m.storeResults
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		switch m.ViewState.Section {
		case domain.SectionLibrary:
			m.Cards, cmd = m.Cards.Update(msg)
		case domain.SectionStore:
			m.StoreCards, cmd = m.StoreCards.Update(msg)
		}
		return m, cmd

	case TickMsg:
		m.SpinnerFrame++
		if m.Toasts.Expire() {
			m.updateLayout()
		}
		return m, TickCmd(tickInterval)

	case NotificationMsg:
		m.notify(msg.Notification.Kind, msg.Notification.Message)
		return m, ListenNotificationsCmd(m.notifications)

	case GamesLoadedMsg:
		m.done()
		if m.Catalog.Apply(msg.Ticket, msg.Games) {
			m.index = search.NewIndex(m.Catalog.Games())
			m.render()
		}
		return m, nil

	case GamesLoadFailedMsg:
		m.done()
		m.logger.Error("catalog load failed", "ticket", msg.Ticket, "error", msg.Err)
		// Transport failures were already surfaced by the gateway
		if !domain.IsTransport(msg.Err) {
			m.notifyFailure(msgLoadFailed, msg.Err)
		}
		return m, nil

	case StoreResultsMsg:
		m.done()
		if msg.Generation != m.storeGen {
			m.logger.Debug("discarding stale store results", "query", msg.Query, "generation", msg.Generation, "current", m.storeGen)
			return m, nil
		}
		m.storeSearching = false
		if msg.Err != nil {
			m.notifyFailure(msgStoreFailed, msg.Err)
			return m, nil
		}
		m.storeResults = msg.Results
		m.StoreCards.SetTree(view.RenderStoreResults(msg.Results))
		m.StoreCards.SetCursor(0)
		return m, nil

	case GameAddedMsg:
		m.done()
		return m.handleGameAdded(msg)

	case GameDetailsMsg:
		m.done()
		if msg.Err != nil {
			m.notifyFailure(msgDetailsFailed, msg.Err)
			return m, nil
		}
		m.Detail.Show(*msg.Game)
		m.Detail.SetSize(m.Width, m.Height)
		return m, nil

	case MetadataUpdatedMsg:
		m.done()
		if msg.Err != nil {
			m.notify(domain.NotifyWarning, msgEnrichFailed)
			return m, nil
		}
		m.notify(domain.NotifySuccess, msgMetadataUpdated)
		if m.Detail.IsVisible() && m.Detail.Game().ID == msg.GameID && msg.Game != nil {
			m.Detail.Show(*msg.Game)
		}
		cmd := m.reload()
		return m, cmd

	case InstallDoneMsg:
		m.done()
		return m.handleInstallDone(msg)
	}

	return m, nil
}

func (m Model) handleGameAdded(msg GameAddedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		text := msgAddFailed
		if msg.FromStore {
			text = fmt.Sprintf("Failed to add %s", msg.Name)
		}
		m.notifyFailure(text, msg.Err)
		return m, nil
	}

	if msg.FromStore {
		m.notify(domain.NotifySuccess, fmt.Sprintf("%s added to library!", msg.Name))
	} else {
		m.notify(domain.NotifySuccess, msgGameAdded)
	}

	if out := msg.Outcome; out != nil {
		switch {
		case out.EnrichErr != nil:
			m.notify(domain.NotifyWarning, msgEnrichFailed)
		case out.Enriched:
			m.notify(domain.NotifySuccess, msgMetadataUpdated)
		}
	}

	// A store add only reloads when the catalog is on screen; switching
	// back to the library reloads anyway.
	if msg.FromStore && m.ViewState.Section != domain.SectionLibrary {
		return m, nil
	}
	cmd := m.reload()
	return m, cmd
}

func (m Model) handleInstallDone(msg InstallDoneMsg) (tea.Model, tea.Cmd) {
	uninstall := msg.Action == service.ActionUninstall
	switch {
	case errors.Is(msg.Err, domain.ErrNotImplemented):
		text := msgInstallSoon
		if uninstall {
			text = msgUninstallSoon
		}
		m.notify(domain.NotifyInfo, text)
		return m, nil

	case msg.Err != nil:
		text := msgInstallFailed
		if uninstall {
			text = msgUninstallFailed
		}
		m.notifyFailure(text, msg.Err)
		return m, nil
	}

	cmd := m.reload()
	return m, cmd
}

// render re-derives the visible subset and rebuilds every catalog tree.
// It runs synchronously after any state change that affects them.
func (m *Model) render() {
	subset := m.Catalog.Visible(m.ViewState.Filter, m.ViewState.Query)
	m.Cards.SetTree(view.RenderCatalog(subset, m.ViewState.View))
	m.Sidebar = view.RenderSidebar(m.ViewState, m.Catalog.Counts(), m.Catalog.Stats())
}

// reload issues a catalog load. The ticket is taken before the request so
// an older response can never overwrite a newer one.
func (m *Model) reload() tea.Cmd {
	ticket := m.Catalog.Begin()
	m.pending++
	return LoadGamesCmd(m.LibrarySvc, ticket, m.cfg.Server.Timeout)
}

// searchStore starts a store search and invalidates any in flight
func (m *Model) searchStore(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	m.storeGen++
	m.storeQuery = query
	m.storeSearching = false
	if query == "" {
		m.storeResults = nil
		m.StoreCards.SetTree(view.RenderStoreResults(nil))
		return nil
	}
	m.storeSearching = true
	m.pending++
	return SearchStoreCmd(m.LibrarySvc, query, m.cfg.Store.SearchLimit, m.storeGen, m.cfg.Server.Timeout)
}

// setSection switches the top-level section. Only the library reloads.
func (m *Model) setSection(section domain.Section) tea.Cmd {
	prev := m.ViewState.Section
	m.ViewState.Section = section
	m.SearchBar.Blur()
	m.StoreBar.Blur()

	if prev == domain.SectionStore && section != domain.SectionStore {
		// Store results are transient; drop them and anything in flight
		m.storeGen++
		m.storeResults = nil
		m.storeQuery = ""
		m.storeSearching = false
		m.StoreBar.SetValue("")
		m.StoreCards.SetTree(view.RenderStoreResults(nil))
	}

	m.render()
	m.updateLayout()

	if section == domain.SectionLibrary {
		return m.reload()
	}
	return nil
}

// setFilter changes the category filter and re-renders
func (m *Model) setFilter(filter domain.Filter) {
	m.ViewState.Filter = filter
	m.render()
}

// setQuery changes the search query and re-renders
func (m *Model) setQuery(raw string) {
	m.ViewState.Query = catalog.NormalizeQuery(raw)
	m.render()
}

// setViewMode switches the layout of both card views
func (m *Model) setViewMode(mode domain.ViewMode) {
	m.ViewState.View = mode
	m.Cards.SetMode(mode)
	m.StoreCards.SetMode(mode)
	m.render()
	if len(m.storeResults) > 0 || m.storeQuery != "" {
		m.StoreCards.SetTree(view.RenderStoreResults(m.storeResults))
	}
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Model) notify(kind domain.NotificationKind, text string) {
	m.Toasts.Push(domain.Notification{Kind: kind, Message: text})
	m.updateLayout()
}

// notifyFailure reports a failed flow. Rejections carry the backend's
// reason.
func (m *Model) notifyFailure(text string, err error) {
	var rejected *domain.RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		text += ": " + rejected.Message
	}
	m.notify(domain.NotifyError, text)
}

// settingsOf lists the effective configuration for the settings page
func settingsOf(cfg *config.Config) []view.Setting {
	return []view.Setting{
		{Label: "Server", Value: cfg.BaseURL()},
		{Label: "Request timeout", Value: cfg.Server.Timeout.String()},
		{Label: "Page size", Value: fmt.Sprint(cfg.Server.PageSize)},
		{Label: "Store results", Value: fmt.Sprint(cfg.Store.SearchLimit)},
		{Label: "Default view", Value: cfg.UI.DefaultView},
		{Label: "Grid columns", Value: fmt.Sprint(cfg.UI.GridColumns)},
		{Label: "Notification duration", Value: cfg.UI.NotificationTTL.String()},
		{Label: "Log file", Value: cfg.Logging.File},
		{Label: "Log level", Value: cfg.Logging.Level},
	}
}
