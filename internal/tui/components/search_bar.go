package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/tui/styles"
)

// SearchBar is a single-line query input shown above the cards
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates a search bar with the given prompt and placeholder
func NewSearchBar(prompt, placeholder string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.CharLimit = 100
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus puts the cursor in the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur releases the input, keeping its value
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused returns whether the input has the cursor
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the current text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth sets the input width
func (s *SearchBar) SetWidth(w int) {
	s.input.Width = max(w-lipgloss.Width(s.input.Prompt)-2, 10)
}

// Update routes a message to the input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the bar
func (s SearchBar) View() string {
	return s.input.View()
}
