package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/service"
	"github.com/mmcdole/gamehub/internal/view"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Focused inputs take every key
	if m.SearchBar.Focused() {
		return m.handleSearchInput(msg)
	}
	if m.StoreBar.Focused() {
		return m.handleStoreInput(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Library):
		return m.dispatchSidebar(view.ActionNavigate, string(domain.SectionLibrary))

	case key.Matches(msg, Keys.Store):
		return m.dispatchSidebar(view.ActionNavigate, string(domain.SectionStore))

	case key.Matches(msg, Keys.Settings):
		return m.dispatchSidebar(view.ActionNavigate, string(domain.SectionSettings))

	case key.Matches(msg, Keys.Refresh):
		m.notify(domain.NotifyInfo, msgRefreshing)
		cmd := m.reload()
		return m, cmd

	case key.Matches(msg, Keys.AddGame):
		m.Form.Show()
		return m, nil

	case key.Matches(msg, Keys.Jump):
		if !m.Catalog.Loaded() {
			m.notify(domain.NotifyInfo, msgPaletteNoCatalog)
			return m, nil
		}
		m.Palette.Show()
		m.Palette.SetSize(m.Width, m.Height)
		return m, nil

	case key.Matches(msg, Keys.ToggleView):
		mode := domain.ViewList
		if m.ViewState.View == domain.ViewList {
			mode = domain.ViewGrid
		}
		m.setViewMode(mode)
		return m, nil
	}

	switch m.ViewState.Section {
	case domain.SectionLibrary:
		return m.handleLibraryKey(msg)
	case domain.SectionStore:
		return m.handleStoreKey(msg)
	}
	return m, nil
}

// handleLibraryKey handles keys on the catalog
func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.FilterAll):
		return m.dispatchSidebar(view.ActionFilter, string(domain.FilterAll))

	case key.Matches(msg, Keys.FilterInstalled):
		return m.dispatchSidebar(view.ActionFilter, string(domain.FilterInstalled))

	case key.Matches(msg, Keys.FilterNot):
		return m.dispatchSidebar(view.ActionFilter, string(domain.FilterUninstalled))

	case key.Matches(msg, Keys.Search):
		cmd := m.SearchBar.Focus()
		return m, cmd

	case key.Matches(msg, Keys.Escape):
		if m.SearchBar.Value() != "" {
			m.SearchBar.SetValue("")
			m.setQuery("")
		}
		return m, nil

	case key.Matches(msg, Keys.Open):
		if action, ok := m.Cards.SelectedAction(view.ActionDetails); ok {
			return m.dispatch(action)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleInstall):
		if action, ok := m.Cards.SelectedAction(view.ActionInstall, view.ActionUninstall); ok {
			return m.dispatch(action)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Cards, cmd = m.Cards.Update(msg)
	return m, cmd
}

// handleStoreKey handles keys on the store results
func (m Model) handleStoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		cmd := m.StoreBar.Focus()
		return m, cmd

	case key.Matches(msg, Keys.AddFromStore):
		if action, ok := m.StoreCards.SelectedAction(view.ActionAddFromStore); ok {
			return m.dispatch(action)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.StoreCards, cmd = m.StoreCards.Update(msg)
	return m, cmd
}

// handleSearchInput re-derives the catalog on every keystroke
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.SearchBar.SetValue("")
		m.SearchBar.Blur()
		m.setQuery("")
		return m, nil
	case "enter":
		m.SearchBar.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.SearchBar.Value()
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	if m.SearchBar.Value() != before {
		m.setQuery(m.SearchBar.Value())
	}
	return m, cmd
}

// handleStoreInput edits the store query; enter runs the search
func (m Model) handleStoreInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.StoreBar.Blur()
		return m, nil
	case "enter":
		m.StoreBar.Blur()
		cmd := m.searchStore(m.StoreBar.Value())
		return m, cmd
	}

	var cmd tea.Cmd
	m.StoreBar, cmd = m.StoreBar.Update(msg)
	return m, cmd
}

// routeToModal sends keys to the visible modal. Returns handled=false when
// no modal is open.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case m.Form.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.Form, cmd, submitted = m.Form.Update(msg)
		if submitted {
			cmd = m.submitForm()
		}
		return true, m, cmd

	case m.Palette.IsVisible():
		var cmd tea.Cmd
		var selected bool
		m.Palette, cmd, selected = m.Palette.Update(msg)

		if m.Palette.QueryChanged() {
			query := m.Palette.Query()
			results := m.SearchSvc.Find(query, m.index)
			var suggestions []domain.GameRecord
			if len(results) == 0 {
				suggestions = m.SearchSvc.Suggest(query, m.index, 5)
			}
			m.Palette.SetResults(results, suggestions)
		}

		if selected {
			if game, ok := m.Palette.Selected(); ok {
				m.Palette.Hide()
				cmd = m.jumpTo(game)
			}
		}
		return true, m, cmd

	case m.Detail.IsVisible():
		switch {
		case key.Matches(msg, Keys.ToggleInstall):
			if action, ok := m.Detail.Action(view.ActionInstall, view.ActionUninstall); ok {
				next, cmd := m.dispatch(action)
				return true, next.(Model), cmd
			}
			return true, m, nil

		case key.Matches(msg, Keys.UpdateMetadata):
			if action, ok := m.Detail.Action(view.ActionUpdateMetadata); ok {
				next, cmd := m.dispatch(action)
				return true, next.(Model), cmd
			}
			return true, m, nil
		}

		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return true, m, cmd
	}

	return false, m, nil
}

// submitForm validates the add form and starts the add flow
func (m *Model) submitForm() tea.Cmd {
	form := m.Form.Value()
	if _, err := m.LibrarySvc.BuildNewGame(form); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			m.Form.SetError(verr.Message)
		} else {
			m.Form.SetError(err.Error())
		}
		return nil
	}

	m.Form.Hide()
	m.pending++
	return AddGameCmd(m.LibrarySvc, form, m.cfg.Server.Timeout)
}

// jumpTo selects a game on the catalog, widening the filter when it is
// hidden
func (m *Model) jumpTo(game domain.GameRecord) tea.Cmd {
	var cmd tea.Cmd
	if m.ViewState.Section != domain.SectionLibrary {
		cmd = m.setSection(domain.SectionLibrary)
	}
	if !m.Cards.SelectGame(game.ID) {
		m.SearchBar.SetValue("")
		m.ViewState.Query = ""
		m.setFilter(domain.FilterAll)
		m.Cards.SelectGame(game.ID)
	}
	return cmd
}

// dispatchSidebar activates the sidebar entry bound to target
func (m Model) dispatchSidebar(kind view.ActionKind, target string) (tea.Model, tea.Cmd) {
	for _, a := range view.Actions(m.Sidebar) {
		if a.Kind == kind && a.Target == target {
			return m.dispatch(a)
		}
	}
	return m, nil
}

// dispatch runs the handler bound to a rendered action
func (m Model) dispatch(a view.Action) (tea.Model, tea.Cmd) {
	timeout := m.cfg.Server.Timeout

	switch a.Kind {
	case view.ActionNavigate:
		cmd := m.setSection(domain.Section(a.Target))
		return m, cmd

	case view.ActionFilter:
		m.setFilter(domain.Filter(a.Target))
		return m, nil

	case view.ActionDetails:
		m.pending++
		return m, LoadDetailsCmd(m.LibrarySvc, a.GameID, timeout)

	case view.ActionInstall, view.ActionUninstall:
		m.pending++
		return m, InstallCmd(m.InstallSvc, service.InstallAction(a.Kind), a.GameID, timeout)

	case view.ActionUpdateMetadata:
		m.pending++
		return m, RefreshMetadataCmd(m.LibrarySvc, a.GameID, timeout)

	case view.ActionAddFromStore:
		for _, r := range m.storeResults {
			if r.ID == a.StoreID {
				m.pending++
				return m, AddFromStoreCmd(m.LibrarySvc, r, timeout)
			}
		}
		m.logger.Warn("store result no longer available", "storeID", a.StoreID)
		return m, nil
	}

	return m, nil
}
