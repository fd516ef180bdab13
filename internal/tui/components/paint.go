package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/tui/styles"
	"github.com/mmcdole/gamehub/internal/view"
)

// Card body height in lines, excluding the border
const CardBodyHeight = 7

// actionKeys maps actions to the key that triggers them
var actionKeys = map[view.ActionKind]string{
	view.ActionInstall:        "x",
	view.ActionUninstall:      "x",
	view.ActionDetails:        "enter",
	view.ActionAddFromStore:   "enter",
	view.ActionUpdateMetadata: "m",
}

func textOf(n view.Node, class string) string {
	if found, ok := view.Find(n, class); ok && !found.Hidden {
		return found.Text
	}
	return ""
}

// PaintCard renders a card node as a bordered grid cell of the given
// outer width.
func PaintCard(card view.Node, selected bool, width int) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	frameW, _ := style.GetFrameSize()
	inner := width - frameW
	if inner < 4 {
		inner = 4
	}

	title := styles.TitleStyle.Render(styles.Truncate(textOf(card, "game-title"), inner))
	genre := styles.DimStyle.Render(styles.Truncate(textOf(card, "game-genre"), inner))

	summary := lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Width(inner).
		MaxHeight(3).
		Render(textOf(card, "game-summary"))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		genre,
		summary,
	)
	body = lipgloss.NewStyle().Height(5).MaxHeight(5).Render(body)

	content := lipgloss.JoinVertical(lipgloss.Left,
		body,
		paintMeta(card),
		paintButtons(card),
	)

	return style.Width(inner).Height(CardBodyHeight).MaxHeight(CardBodyHeight + 2).Render(content)
}

// PaintRow renders a card node as a single list row
func PaintRow(card view.Node, selected bool, width int) string {
	marker := ""
	var markerFg lipgloss.Color
	if _, ok := view.ActionOf(card, view.ActionUninstall); ok {
		marker = styles.InstalledChar
		markerFg = styles.Green
	} else if _, ok := view.ActionOf(card, view.ActionInstall); ok {
		marker = styles.UninstalledChar
		markerFg = styles.DimGray
	} else {
		marker = "+"
		markerFg = styles.Amber
	}

	var tail []string
	if genre := textOf(card, "game-genre"); genre != "" {
		tail = append(tail, genre)
	}
	if rating := textOf(card, "game-rating"); rating != "" {
		tail = append(tail, rating)
	}
	if size := textOf(card, "game-size"); size != "" {
		tail = append(tail, size)
	}
	meta := ""
	if len(tail) > 0 {
		meta = "  " + strings.Join(tail, " · ")
	}

	title := styles.Truncate(textOf(card, "game-title"), width-lipgloss.Width(meta)-6)
	dimGray := styles.DimGray

	parts := []styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: " " + title, Foreground: nil},
		{Text: meta, Foreground: &dimGray},
	}
	return styles.RenderListRow(parts, selected, width)
}

func paintMeta(card view.Node) string {
	var parts []string
	if rating := textOf(card, "game-rating"); rating != "" {
		parts = append(parts, styles.BadgeStyle.Render(rating))
	}
	if size := textOf(card, "game-size"); size != "" {
		parts = append(parts, styles.DimStyle.Render(size))
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, " ")
}

func paintButtons(n view.Node) string {
	var buttons []string
	for _, b := range buttonsOf(n) {
		label := b.Text
		if key, ok := actionKeys[b.Action.Kind]; ok {
			label = key + " " + label
		}
		style := styles.ButtonStyle
		if b.Action.Kind == view.ActionInstall || b.Action.Kind == view.ActionAddFromStore {
			style = styles.PrimaryButtonStyle
		}
		buttons = append(buttons, style.Render(label))
	}
	return strings.Join(buttons, " ")
}

func buttonsOf(n view.Node) []view.Node {
	var out []view.Node
	var visit func(view.Node)
	visit = func(node view.Node) {
		if node.Hidden {
			return
		}
		if node.Kind == view.KindButton && node.Action != nil {
			out = append(out, node)
			return
		}
		for _, c := range node.Children {
			visit(c)
		}
	}
	visit(n)
	return out
}

// PaintTree renders an arbitrary node tree top to bottom. It is used for
// the detail modal, the settings page and empty states.
func PaintTree(n view.Node, width int) string {
	var lines []string
	var visit func(view.Node)
	visit = func(node view.Node) {
		if node.Hidden {
			return
		}
		switch node.Kind {
		case view.KindTitle:
			lines = append(lines, styles.ModalTitleStyle.Render(node.Text))
			return
		case view.KindHeading:
			lines = append(lines, "", styles.HeadingStyle.Render(node.Text))
			return
		case view.KindField:
			if label, value, ok := strings.Cut(node.Text, ": "); ok {
				lines = append(lines, styles.DimStyle.Render(label+":")+" "+styles.SubtitleStyle.Render(value))
			} else {
				lines = append(lines, styles.SubtitleStyle.Render(node.Text))
			}
			return
		case view.KindBadge:
			lines = append(lines, styles.BadgeStyle.Render(node.Text))
			return
		case view.KindImage:
			if node.Src != "" {
				lines = append(lines, styles.DimStyle.Render("Cover: "+styles.Truncate(node.Src, width-7)))
			}
			return
		case view.KindText:
			if node.Text != "" {
				lines = append(lines, lipgloss.NewStyle().Foreground(styles.LightGray).Width(width).Render(node.Text))
			}
			return
		case view.KindEmpty:
			if node.Text != "" {
				lines = append(lines, styles.DimStyle.Render(node.Text))
			}
		case view.KindContainer:
			if node.Class == "modal-actions" {
				lines = append(lines, "", paintButtons(node))
				return
			}
		}
		for _, c := range node.Children {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(lines, "\n")
}
