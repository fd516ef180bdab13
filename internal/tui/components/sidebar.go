package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/gamehub/internal/tui/styles"
	"github.com/mmcdole/gamehub/internal/view"
)

// SidebarWidth is the fixed outer width of the sidebar
const SidebarWidth = 28

// PaintSidebar renders a sidebar tree. Active entries are highlighted.
func PaintSidebar(tree view.Node, height int) string {
	inner := SidebarWidth - 4
	var lines []string

	lines = append(lines, styles.HeadingStyle.Render("GameHub"), "")

	for _, group := range tree.Children {
		switch group.Class {
		case "nav":
			for _, item := range group.Children {
				lines = append(lines, paintEntry(item, inner))
			}
			lines = append(lines, "")
		case "categories", "stats":
			for _, item := range group.Children {
				switch item.Kind {
				case view.KindHeading:
					lines = append(lines, styles.DimStyle.Render(strings.ToUpper(item.Text)))
				case view.KindButton:
					lines = append(lines, paintEntry(item, inner))
				default:
					lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(item.Text, inner)))
				}
			}
			lines = append(lines, "")
		}
	}

	return styles.SidebarStyle.
		Width(SidebarWidth).
		Height(height).
		MaxHeight(height).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.SlateLight).
		Render(strings.Join(lines, "\n"))
}

func paintEntry(item view.Node, width int) string {
	label := styles.Truncate(item.Text, width-2)
	if item.Active {
		return styles.ActiveItemStyle.Render(label)
	}
	return styles.NormalItemStyle.Render(label)
}
