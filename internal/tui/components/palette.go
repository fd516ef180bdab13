package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/search"
	"github.com/mmcdole/gamehub/internal/tui/styles"
)

// Palette is the fuzzy jump-to-game modal
type Palette struct {
	input       textinput.Model
	results     []search.Result
	suggestions []domain.GameRecord
	cursor      int
	visible     bool
	width       int
	height      int
	prevQuery   string // Track query changes for real-time filtering
}

// NewPalette creates a new palette component
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "Jump to game..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "› "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Palette{input: ti}
}

// Show makes the palette visible and focuses the input
func (p *Palette) Show() {
	p.visible = true
	p.input.Focus()
	p.input.SetValue("")
	p.results = nil
	p.suggestions = nil
	p.cursor = 0
	p.prevQuery = ""
}

// Hide hides the palette
func (p *Palette) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns true if the palette is visible
func (p Palette) IsVisible() bool {
	return p.visible
}

// SetResults sets the fuzzy matches and, for when there are none, the
// near-miss suggestions
func (p *Palette) SetResults(results []search.Result, suggestions []domain.GameRecord) {
	p.results = results
	p.suggestions = suggestions
	p.cursor = 0
}

// SetSize updates the component dimensions
func (p *Palette) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width/2-10, 20)
}

// Query returns the current query
func (p Palette) Query() string {
	return p.input.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (p *Palette) QueryChanged() bool {
	current := p.input.Value()
	if current != p.prevQuery {
		p.prevQuery = current
		return true
	}
	return false
}

func (p Palette) count() int {
	if len(p.results) > 0 {
		return len(p.results)
	}
	return len(p.suggestions)
}

// Selected returns the game under the cursor
func (p Palette) Selected() (domain.GameRecord, bool) {
	if len(p.results) > 0 {
		if p.cursor < len(p.results) {
			return p.results[p.cursor].Game, true
		}
		return domain.GameRecord{}, false
	}
	if p.cursor < len(p.suggestions) {
		return p.suggestions[p.cursor], true
	}
	return domain.GameRecord{}, false
}

// Update handles messages, returns (palette, cmd, selected)
func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, modalKeys.Escape):
			p.Hide()
			return p, nil, false

		case key.Matches(keyMsg, modalKeys.Enter):
			return p, nil, p.count() > 0

		case key.Matches(keyMsg, modalKeys.Down):
			if p.cursor < p.count()-1 {
				p.cursor++
			}
			return p, nil, false

		case key.Matches(keyMsg, modalKeys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, false
		}
	}

	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// View renders the palette
func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	modalWidth := p.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	const maxResults = 10

	var b strings.Builder
	b.WriteString("Jump to Game")
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	switch {
	case len(p.results) > 0:
		for i, r := range p.results[:min(len(p.results), maxResults)] {
			b.WriteString(renderMatch(r, i == p.cursor, modalWidth-8))
			b.WriteString("\n")
		}
		if len(p.results) > maxResults {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(p.results)-maxResults)))
		}
	case len(p.suggestions) > 0:
		b.WriteString(styles.DimStyle.Render("No matches. Did you mean:"))
		b.WriteString("\n")
		for i, g := range p.suggestions {
			style := styles.NormalItemStyle
			if i == p.cursor {
				style = styles.SelectedItemStyle
			}
			b.WriteString(style.Render(styles.Truncate(g.Name, modalWidth-8)))
			b.WriteString("\n")
		}
	case p.input.Value() != "":
		b.WriteString(styles.DimStyle.Render("No matches found"))
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	return styles.ModalStyle.
		Width(modalWidth).
		Render(content)
}

// renderMatch highlights the matched runes of a result's name
func renderMatch(r search.Result, selected bool, width int) string {
	name := []rune(styles.Truncate(r.Game.Name, width-4))
	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, i := range r.MatchedIndexes {
		matched[i] = true
	}

	base := styles.NormalItemStyle.Padding(0)
	hl := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedItemStyle.Padding(0)
		hl = styles.MatchHighlightSelectedStyle
	}

	marker := styles.UninstalledChar
	if r.Game.IsInstalled {
		marker = styles.InstalledChar
	}

	var line strings.Builder
	line.WriteString(base.Render(" " + marker + " "))
	for i, ch := range name {
		if matched[i] {
			line.WriteString(hl.Render(string(ch)))
		} else {
			line.WriteString(base.Render(string(ch)))
		}
	}
	line.WriteString(base.Render(" "))
	return line.String()
}
