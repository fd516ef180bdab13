package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/tui/styles"
	"github.com/mmcdole/gamehub/internal/view"
)

// Layout constants for the card view
const (
	// Card border adds one line above and below the body
	CardHeight = CardBodyHeight + 2

	// Narrowest a grid card may get before we drop a column
	MinCardWidth = 26

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// CardView shows the cards of a rendered tree as a grid or a list and
// tracks the selection. The tree is replaced wholesale on every render.
type CardView struct {
	tree  view.Node
	cards []view.Node

	mode    domain.ViewMode
	columns int // Preferred grid columns

	// Selection
	cursor int
	offset int // First visible row

	// Dimensions
	width  int
	height int
}

// NewCardView creates a card view
func NewCardView(mode domain.ViewMode, columns int) CardView {
	if columns <= 0 {
		columns = 1
	}
	return CardView{mode: mode, columns: columns}
}

// SetTree replaces the rendered tree. The cursor is kept where it was,
// clamped to the new card count.
func (c *CardView) SetTree(tree view.Node) {
	c.tree = tree
	c.cards = view.Cards(tree)
	c.SetCursor(c.cursor)
}

// SetMode switches between grid and list layout
func (c *CardView) SetMode(mode domain.ViewMode) {
	c.mode = mode
	c.offset = 0
	c.ensureVisible()
}

// Mode returns the current layout mode
func (c CardView) Mode() domain.ViewMode {
	return c.mode
}

// SetSize updates the component dimensions
func (c *CardView) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.ensureVisible()
}

// Len returns the number of cards
func (c CardView) Len() int {
	return len(c.cards)
}

// IsEmpty returns true if there are no cards
func (c CardView) IsEmpty() bool {
	return len(c.cards) == 0
}

// Cursor returns the current cursor position
func (c CardView) Cursor() int {
	return c.cursor
}

// SetCursor sets the cursor position
func (c *CardView) SetCursor(pos int) {
	last := len(c.cards) - 1
	if last < 0 {
		c.cursor = 0
		c.offset = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > last {
		pos = last
	}
	c.cursor = pos
	c.ensureVisible()
}

// Selected returns the selected card
func (c CardView) Selected() (view.Node, bool) {
	if len(c.cards) == 0 || c.cursor >= len(c.cards) {
		return view.Node{}, false
	}
	return c.cards[c.cursor], true
}

// SelectedAction returns the first action of the given kinds on the
// selected card
func (c CardView) SelectedAction(kinds ...view.ActionKind) (view.Action, bool) {
	card, ok := c.Selected()
	if !ok {
		return view.Action{}, false
	}
	return view.ActionOf(card, kinds...)
}

// SelectGame moves the cursor to the card bound to gameID
func (c *CardView) SelectGame(gameID string) bool {
	for i, card := range c.cards {
		for _, a := range view.Actions(card) {
			if a.GameID == gameID {
				c.SetCursor(i)
				return true
			}
		}
	}
	return false
}

// gridColumns returns how many cards fit on a row
func (c CardView) gridColumns() int {
	if c.mode == domain.ViewList {
		return 1
	}
	cols := c.columns
	for cols > 1 && c.width/cols < MinCardWidth {
		cols--
	}
	return cols
}

func (c CardView) rowHeight() int {
	if c.mode == domain.ViewList {
		return 1
	}
	return CardHeight
}

// visibleRows returns how many rows fit in the viewport
func (c CardView) visibleRows() int {
	rows := (c.height - ScrollIndicatorLines) / c.rowHeight()
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureVisible ensures the cursor row is visible
func (c *CardView) ensureVisible() {
	row := c.cursor / c.gridColumns()
	rows := c.visibleRows()
	if row < c.offset {
		c.offset = row
	}
	if row >= c.offset+rows {
		c.offset = row - rows + 1
	}
}

func (c *CardView) move(delta int) {
	if len(c.cards) == 0 {
		return
	}
	c.SetCursor(c.cursor + delta)
}

// Init initializes the component
func (c CardView) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and the mouse wheel
func (c CardView) Update(msg tea.Msg) (CardView, tea.Cmd) {
	if len(c.cards) == 0 {
		return c, nil
	}
	cols := c.gridColumns()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, cardKeys.Down):
			c.move(cols)
		case key.Matches(msg, cardKeys.Up):
			c.move(-cols)
		case key.Matches(msg, cardKeys.Right):
			if cols > 1 {
				c.move(1)
			}
		case key.Matches(msg, cardKeys.Left):
			if cols > 1 {
				c.move(-1)
			}
		case key.Matches(msg, cardKeys.Home):
			c.SetCursor(0)
		case key.Matches(msg, cardKeys.End):
			c.SetCursor(len(c.cards) - 1)
		case key.Matches(msg, cardKeys.HalfDown):
			c.move(cols * max(c.visibleRows()/2, 1))
		case key.Matches(msg, cardKeys.HalfUp):
			c.move(-cols * max(c.visibleRows()/2, 1))
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			c.move(cols)
		case tea.MouseButtonWheelUp:
			c.move(-cols)
		}
	}
	return c, nil
}

// View renders the component
func (c CardView) View() string {
	style := lipgloss.NewStyle().Width(c.width).Height(c.height).MaxHeight(c.height)

	if len(c.cards) == 0 {
		empty := PaintTree(c.tree, c.width-4)
		return style.Render(lipgloss.Place(c.width, c.height-1, lipgloss.Center, lipgloss.Center, empty))
	}

	cols := c.gridColumns()
	rows := c.visibleRows()
	totalRows := (len(c.cards) + cols - 1) / cols
	end := min(c.offset+rows, totalRows)

	var lines []string
	for row := c.offset; row < end; row++ {
		if c.mode == domain.ViewList {
			lines = append(lines, PaintRow(c.cards[row], row == c.cursor, c.width))
			continue
		}
		cellWidth := c.width / cols
		var cells []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(c.cards) {
				break
			}
			cells = append(cells, PaintCard(c.cards[i], i == c.cursor, cellWidth))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < totalRows {
		footer = styles.DimStyle.Render(fmt.Sprintf("↓ %d more", len(c.cards)-end*cols))
	}

	content := header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	return style.Render(content)
}
