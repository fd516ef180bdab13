package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/service"
	"github.com/mmcdole/gamehub/internal/tui/styles"
)

const (
	fieldName = iota
	fieldIGDBID
	fieldFilePath
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "IGDB ID (optional)", "File path (optional)"}

// AddGameForm is the add-game modal
type AddGameForm struct {
	visible bool
	inputs  [fieldCount]textinput.Model
	focus   int
	err     string
}

// NewAddGameForm creates a new add-game form
func NewAddGameForm() AddGameForm {
	var f AddGameForm
	placeholders := [fieldCount]string{"Game name...", "e.g. 1942", "/path/to/game"}
	limits := [fieldCount]int{100, 12, 255}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		f.inputs[i] = ti
	}
	return f
}

// Show displays an empty form with the name field focused
func (f *AddGameForm) Show() {
	f.visible = true
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldName
	f.inputs[fieldName].Focus()
}

// Hide dismisses the form and discards its contents
func (f *AddGameForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f AddGameForm) IsVisible() bool {
	return f.visible
}

// SetError shows a validation error under the fields
func (f *AddGameForm) SetError(msg string) {
	f.err = msg
}

// Value returns the raw form contents
func (f AddGameForm) Value() service.AddGameForm {
	return service.AddGameForm{
		Name:     f.inputs[fieldName].Value(),
		IGDBID:   f.inputs[fieldIGDBID].Value(),
		FilePath: f.inputs[fieldFilePath].Value(),
	}
}

func (f *AddGameForm) cycle(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update handles input events, returns (form, cmd, submitted)
func (f AddGameForm) Update(msg tea.Msg) (AddGameForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return f, nil, true
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down":
			f.cycle(1)
			return f, nil, false
		case "shift+tab", "up":
			f.cycle(-1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// View renders the form
func (f AddGameForm) View() string {
	if !f.visible {
		return ""
	}

	const modalWidth = 46

	bg := lipgloss.NewStyle().Width(modalWidth).Background(styles.SlateDark)
	titleStyle := bg.Foreground(styles.White).Bold(true)

	rows := []string{titleStyle.Render("Add Game"), bg.Render("")}
	for i, input := range f.inputs {
		labelStyle := bg.Foreground(styles.DimGray)
		if i == f.focus {
			labelStyle = bg.Foreground(styles.Amber)
		}
		rows = append(rows, labelStyle.Render(fieldLabels[i]), bg.Render(input.View()), bg.Render(""))
	}
	if f.err != "" {
		rows = append(rows, bg.Foreground(styles.Red).Render(f.err))
	}
	rows = append(rows, bg.Foreground(styles.DimGray).Render("tab next · enter add · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
