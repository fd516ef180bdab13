package view

import (
	"fmt"
	"strconv"

	"github.com/mmcdole/gamehub/internal/domain"
)

// Setting is a read-only label/value pair on the settings page
type Setting struct {
	Label string
	Value string
}

// RenderSidebar renders navigation, category counts and library stats.
// Counts come from the unfiltered catalog.
func RenderSidebar(state domain.ViewState, counts domain.CategoryCounts, stats domain.LibraryStats) Node {
	nav := container("nav")
	for i, s := range domain.Sections {
		item := button("nav-item", fmt.Sprintf("%d %s", i+1, s.Label()), Action{Kind: ActionNavigate, Target: string(s)})
		item.Active = s == state.Section
		nav.Children = append(nav.Children, item)
	}

	categories := container("categories", el(KindHeading, "categories-heading", "Categories"))
	for _, f := range domain.Filters {
		item := button("category-item", fmt.Sprintf("%s (%d)", f.Label(), counts.Count(f)), Action{Kind: ActionFilter, Target: string(f)})
		item.Active = f == state.Filter
		categories.Children = append(categories.Children, item)
	}

	statBlock := container("stats",
		el(KindHeading, "stats-heading", "Library"),
		el(KindField, "total-games", "Total Games: "+strconv.Itoa(stats.TotalGames)),
		el(KindField, "total-size", "Total Size: "+stats.FormattedTotalSize()),
	)

	return container("sidebar", nav, categories, statBlock)
}

// RenderSettings renders the settings page
func RenderSettings(settings []Setting) Node {
	root := container("settings", el(KindTitle, "settings-title", "Settings"))
	for _, s := range settings {
		root.Children = append(root.Children, el(KindField, "setting", s.Label+": "+s.Value))
	}
	return root
}
