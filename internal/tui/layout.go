package tui

import "github.com/mmcdole/gamehub/internal/tui/components"

// paneLayout holds the computed sizes of the main pane
type paneLayout struct {
	mainWidth   int // Right of the sidebar
	bodyHeight  int // Sidebar and main pane
	cardsHeight int // Main pane minus the header
}

// calculateLayout computes pane sizes. Toasts take lines from the body so
// the footer never moves.
func (m Model) calculateLayout() paneLayout {
	// The sidebar's right border adds one column
	mainWidth := max(m.Width-components.SidebarWidth-1, 20)
	bodyHeight := max(m.Height-ChromeHeight-m.Toasts.Len(), 3)

	return paneLayout{
		mainWidth:   mainWidth,
		bodyHeight:  bodyHeight,
		cardsHeight: max(bodyHeight-HeaderHeight, 1),
	}
}

// updateLayout pushes the current sizes down to the components
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	l := m.calculateLayout()
	// ContentStyle pads one column on each side
	m.Cards.SetSize(l.mainWidth-2, l.cardsHeight)
	m.StoreCards.SetSize(l.mainWidth-2, l.cardsHeight)
	m.SearchBar.SetWidth(l.mainWidth - 2)
	m.StoreBar.SetWidth(l.mainWidth - 2)
	m.Detail.SetSize(m.Width, m.Height)
	m.Palette.SetSize(m.Width, m.Height)
}
