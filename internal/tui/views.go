package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/tui/components"
	"github.com/mmcdole/gamehub/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	l := m.calculateLayout()

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		components.PaintSidebar(m.Sidebar, l.bodyHeight),
		styles.ContentStyle.
			Width(l.mainWidth).
			Height(l.bodyHeight).
			MaxHeight(l.bodyHeight).
			Render(m.renderMain(l)),
	)

	parts := []string{body}
	if m.Toasts.Len() > 0 {
		parts = append(parts, m.renderToasts())
	}
	parts = append(parts, m.renderFooter())

	view := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Overlay the open modal
	switch {
	case m.Form.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Form.View())
	case m.Palette.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Palette.View())
	case m.Detail.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Detail.View())
	}

	return view
}

// renderMain renders the pane right of the sidebar
func (m Model) renderMain(l paneLayout) string {
	inner := l.mainWidth - 2

	switch m.ViewState.Section {
	case domain.SectionStore:
		header := styles.TitleStyle.Render("Store")
		var content string
		switch {
		case m.storeSearching:
			content = lipgloss.Place(inner, l.cardsHeight, lipgloss.Center, lipgloss.Center,
				RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render("Searching..."))
		case m.storeQuery == "":
			content = lipgloss.Place(inner, l.cardsHeight, lipgloss.Center, lipgloss.Center,
				styles.DimStyle.Render("Press / to search for games to add"))
		default:
			content = m.StoreCards.View()
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, m.StoreBar.View(), content)

	case domain.SectionSettings:
		return components.PaintTree(m.Settings, inner)
	}

	counts := m.Catalog.Counts()
	header := styles.TitleStyle.Render("Library") +
		styles.DimStyle.Render(fmt.Sprintf("  %s (%d)", m.ViewState.Filter.Label(), counts.Count(m.ViewState.Filter)))

	search := styles.DimStyle.Render("/ search")
	if m.SearchBar.Focused() || m.SearchBar.Value() != "" {
		search = m.SearchBar.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, search, m.Cards.View())
}

// renderToasts renders notifications right-aligned, newest on top
func (m Model) renderToasts() string {
	var lines []string
	for _, n := range m.Toasts.Items() {
		line := toastStyle(n.Kind).Render(toastIcon(n.Kind) + " " + styles.Truncate(n.Message, m.Width-6))
		lines = append(lines, lipgloss.PlaceHorizontal(m.Width, lipgloss.Right, line))
	}
	return strings.Join(lines, "\n")
}

func toastStyle(kind domain.NotificationKind) lipgloss.Style {
	switch kind {
	case domain.NotifySuccess:
		return styles.ToastSuccessStyle
	case domain.NotifyError:
		return styles.ToastErrorStyle
	case domain.NotifyWarning:
		return styles.ToastWarningStyle
	default:
		return styles.ToastInfoStyle
	}
}

func toastIcon(kind domain.NotificationKind) string {
	switch kind {
	case domain.NotifySuccess:
		return "✓"
	case domain.NotifyError:
		return "✗"
	case domain.NotifyWarning:
		return "!"
	default:
		return "i"
	}
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while requests are outstanding
	var left string
	if m.Loading() {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	}

	// Center section: section-specific hints
	var center string
	switch m.ViewState.Section {
	case domain.SectionLibrary:
		center = hint("enter", "details") + "  " + hint("x", "install") + "  " + hint("n", "add")
	case domain.SectionStore:
		center = hint("/", "search") + "  " + hint("enter", "add to library")
	}

	// Right side: "? help" hint
	right := hint("?", "help")

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, label string) string {
	return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+label)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SECTIONS                        LIBRARY
  1          Library              a/i/u  All / installed / not installed
  2          Store                /      Search
  3          Settings             enter  Details
                                  x      Install / uninstall
NAVIGATION                        v      Grid / list
  j/k        Up/down              r      Refresh
  h/l        Left/right           n      Add game
  g/G        First/last
  Ctrl+u/d   Scroll half page   STORE
  Ctrl+k     Jump to game         /      Search the store
                                  enter  Add to library
DETAILS
  x          Install / uninstall  q      Quit
  m          Update metadata      ?      This help
  j/k        Scroll               Esc    Close / Cancel

Press ? or Esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
