package catalog

import (
	"strings"

	"github.com/mmcdole/gamehub/internal/domain"
)

// NormalizeQuery lower-cases and trims a search query
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// VisibleSubset applies filter then query to games. It never mutates its
// input and returns a fresh slice. A game matches the query when it is a
// substring of the lower-cased name or summary.
func VisibleSubset(games []domain.GameRecord, filter domain.Filter, query string) []domain.GameRecord {
	query = NormalizeQuery(query)

	out := make([]domain.GameRecord, 0, len(games))
	for _, g := range games {
		if !matchesFilter(g, filter) {
			continue
		}
		if query != "" && !matchesQuery(g, query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesFilter(g domain.GameRecord, filter domain.Filter) bool {
	switch filter {
	case domain.FilterInstalled:
		return g.IsInstalled
	case domain.FilterUninstalled:
		return !g.IsInstalled
	default:
		return true
	}
}

func matchesQuery(g domain.GameRecord, query string) bool {
	if strings.Contains(strings.ToLower(g.Name), query) {
		return true
	}
	return g.Summary != nil && strings.Contains(strings.ToLower(*g.Summary), query)
}

// CountsOf computes category counts for games
func CountsOf(games []domain.GameRecord) domain.CategoryCounts {
	counts := domain.CategoryCounts{All: len(games)}
	for _, g := range games {
		if g.IsInstalled {
			counts.Installed++
		}
	}
	counts.Uninstalled = counts.All - counts.Installed
	return counts
}

// StatsOf computes library totals for games
func StatsOf(games []domain.GameRecord) domain.LibraryStats {
	stats := domain.LibraryStats{TotalGames: len(games)}
	for _, g := range games {
		if g.FileSize > 0 {
			stats.TotalSize += g.FileSize
		}
	}
	return stats
}
