package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmcdole/gamehub/internal/domain"
)

const (
	CatalogSummaryLimit = 150
	StoreSummaryLimit   = 120

	NoDescription = "No description available."
	Ellipsis      = "..."
	EmptyCatalog  = "No games found"
	EmptyHint     = "Add some games to your library or adjust your filters."
)

// RenderCatalog renders the visible subset. The empty state is chosen by
// length alone, whatever the reason the subset is empty.
func RenderCatalog(subset []domain.GameRecord, mode domain.ViewMode) Node {
	gridClass := "game-grid"
	if mode == domain.ViewList {
		gridClass = "game-list"
	}

	cards := make([]Node, 0, len(subset))
	for _, game := range subset {
		cards = append(cards, gameCard(game))
	}

	grid := container(gridClass, cards...)
	empty := Node{
		Kind:  KindEmpty,
		Class: "empty-state",
		Children: []Node{
			el(KindHeading, "empty-title", EmptyCatalog),
			el(KindText, "empty-hint", EmptyHint),
		},
	}

	if len(subset) == 0 {
		grid.Hidden = true
	} else {
		empty.Hidden = true
	}

	return container("catalog", grid, empty)
}

func gameCard(game domain.GameRecord) Node {
	meta := container("game-meta",
		el(KindText, "game-genre", strings.Join(firstN(game.Genres.Names(), 2), ", ")),
	)
	if badge, ok := ratingBadge(game.Rating); ok {
		meta.Children = append(meta.Children, badge)
	}
	meta.Children = append(meta.Children, el(KindText, "game-size", game.FormattedFileSize()))

	return Node{
		Kind:  KindCard,
		Class: "game-card",
		Children: []Node{
			coverImage(game.CoverURL),
			el(KindTitle, "game-title", game.Name),
			el(KindText, "game-summary", summaryText(game.Summary, CatalogSummaryLimit)),
			meta,
			container("game-actions",
				installToggle(game),
				button("btn-details", "Details", Action{Kind: ActionDetails, GameID: game.ID}),
			),
		},
	}
}

// installToggle yields exactly one of install or uninstall
func installToggle(game domain.GameRecord) Node {
	if game.IsInstalled {
		return button("btn-uninstall", "Uninstall", Action{Kind: ActionUninstall, GameID: game.ID})
	}
	return button("btn-install", "Install", Action{Kind: ActionInstall, GameID: game.ID})
}

func coverImage(url *string) Node {
	if url == nil || *url == "" {
		return el(KindImage, "game-cover-placeholder", "")
	}
	return Node{Kind: KindImage, Class: "game-cover", Src: *url}
}

func summaryText(summary *string, limit int) string {
	if summary == nil || *summary == "" {
		return NoDescription
	}
	return Truncate(*summary, limit)
}

// Truncate cuts s to limit characters and appends an ellipsis when it was
// longer.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

// FormatRating rounds a 0-100 rating to a whole percentage
func FormatRating(rating float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rating)))
}

func ratingBadge(rating *float64) (Node, bool) {
	if rating == nil {
		return Node{}, false
	}
	return el(KindBadge, "game-rating", FormatRating(*rating)), true
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
