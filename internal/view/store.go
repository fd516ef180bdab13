package view

import (
	"strings"

	"github.com/mmcdole/gamehub/internal/domain"
)

// NoStoreResults is shown when a store search comes back empty
const NoStoreResults = "No games found. Try a different search term."

// RenderStoreResults renders external catalog candidates
func RenderStoreResults(results []domain.StoreResult) Node {
	if len(results) == 0 {
		return container("store-results", el(KindEmpty, "no-results", NoStoreResults))
	}

	cards := make([]Node, 0, len(results))
	for _, result := range results {
		cards = append(cards, storeCard(result))
	}
	return container("store-results", cards...)
}

func storeCard(result domain.StoreResult) Node {
	cover := el(KindImage, "game-cover-placeholder", "")
	if result.Cover != nil && result.Cover.URL != "" {
		cover = Node{Kind: KindImage, Class: "game-cover", Src: StoreCoverURL(result.Cover.URL)}
	}

	meta := container("game-meta")
	if badge, ok := ratingBadge(result.Rating); ok {
		meta.Children = append(meta.Children, badge)
	}

	return Node{
		Kind:  KindCard,
		Class: "store-game-card",
		Children: []Node{
			cover,
			el(KindTitle, "game-title", result.Name),
			el(KindText, "game-summary", summaryText(result.Summary, StoreSummaryLimit)),
			meta,
			container("game-actions",
				button("btn-add-game", "Add to Library", Action{Kind: ActionAddFromStore, StoreID: result.ID}),
			),
		},
	}
}

// StoreCoverURL converts an external catalog thumbnail reference into a
// full-size absolute URL.
func StoreCoverURL(url string) string {
	url = strings.Replace(url, "t_thumb", "t_cover_big", 1)
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	return url
}
