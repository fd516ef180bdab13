package domain

// Filter narrows the catalog by installation state
type Filter string

const (
	FilterAll         Filter = "all"
	FilterInstalled   Filter = "installed"
	FilterUninstalled Filter = "uninstalled"
)

// Filters lists every filter in display order
var Filters = []Filter{FilterAll, FilterInstalled, FilterUninstalled}

// Label returns the display name of the filter
func (f Filter) Label() string {
	switch f {
	case FilterInstalled:
		return "Installed"
	case FilterUninstalled:
		return "Not Installed"
	default:
		return "All Games"
	}
}

// Section is a top-level navigation context
type Section string

const (
	SectionLibrary  Section = "library"
	SectionStore    Section = "store"
	SectionSettings Section = "settings"
)

// Sections lists every section in display order
var Sections = []Section{SectionLibrary, SectionStore, SectionSettings}

// Label returns the display name of the section
func (s Section) Label() string {
	switch s {
	case SectionStore:
		return "Store"
	case SectionSettings:
		return "Settings"
	default:
		return "Library"
	}
}

// ViewMode is the catalog layout. It never affects which games are visible.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode maps a config value to a view mode, defaulting to grid
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == ViewList {
		return ViewList
	}
	return ViewGrid
}

// ViewState is the user-controlled state that drives derivation
type ViewState struct {
	Filter  Filter
	Query   string // Lower-cased and trimmed
	Section Section
	View    ViewMode
}

// CategoryCounts are derived from the unfiltered catalog
type CategoryCounts struct {
	All         int
	Installed   int
	Uninstalled int
}

// Count returns the count for a filter
func (c CategoryCounts) Count(f Filter) int {
	switch f {
	case FilterInstalled:
		return c.Installed
	case FilterUninstalled:
		return c.Uninstalled
	default:
		return c.All
	}
}

// LibraryStats summarizes the whole catalog
type LibraryStats struct {
	TotalGames int
	TotalSize  int64
}

// FormattedTotalSize returns the total size in a human-readable format
func (s LibraryStats) FormattedTotalSize() string {
	return FormatFileSize(s.TotalSize)
}
