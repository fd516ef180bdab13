package components

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/mmcdole/gamehub/internal/tui/styles"
	"github.com/mmcdole/gamehub/internal/view"
)

// DetailModal shows a single game in a scrollable modal
type DetailModal struct {
	visible bool
	game    domain.GameRecord
	tree    view.Node
	vp      viewport.Model
	width   int
	height  int
}

// NewDetailModal creates a detail modal
func NewDetailModal() DetailModal {
	return DetailModal{vp: viewport.New(0, 0)}
}

// Show displays a freshly rendered detail tree for game
func (d *DetailModal) Show(game domain.GameRecord) {
	d.visible = true
	d.game = game
	d.tree = view.RenderDetail(game)
	d.layout()
	d.vp.GotoTop()
}

// Hide dismisses the modal
func (d *DetailModal) Hide() {
	d.visible = false
}

// IsVisible returns whether the modal is shown
func (d DetailModal) IsVisible() bool {
	return d.visible
}

// Game returns the game being shown
func (d DetailModal) Game() domain.GameRecord {
	return d.game
}

// Action returns the first modal action of the given kinds
func (d DetailModal) Action(kinds ...view.ActionKind) (view.Action, bool) {
	return view.ActionOf(d.tree, kinds...)
}

// SetSize updates the component dimensions
func (d *DetailModal) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.layout()
}

func (d *DetailModal) modalWidth() int {
	w := d.width * 2 / 3
	if w < 50 {
		w = 50
	}
	if w > 90 {
		w = 90
	}
	return w
}

func (d *DetailModal) layout() {
	frameW, frameH := styles.ModalStyle.GetFrameSize()
	inner := d.modalWidth() - frameW
	d.vp.Width = inner
	d.vp.Height = max(d.height-frameH-4, 3)
	d.vp.SetContent(PaintTree(d.tree, inner))
}

// Update scrolls the viewport; esc closes the modal
func (d DetailModal) Update(msg tea.Msg) (DetailModal, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			d.Hide()
			return d, nil
		case "j":
			d.vp.LineDown(1)
			return d, nil
		case "k":
			d.vp.LineUp(1)
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

// View renders the modal
func (d DetailModal) View() string {
	if !d.visible {
		return ""
	}

	hint := styles.DimStyle.Render("esc close · j/k scroll")
	content := lipgloss.JoinVertical(lipgloss.Left, d.vp.View(), "", hint)

	return styles.ModalStyle.Width(d.modalWidth()).Render(content)
}
