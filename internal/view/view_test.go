package view

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleGames() []domain.GameRecord {
	return []domain.GameRecord{
		{
			ID:          "1",
			Name:        "Foo",
			Summary:     ptr("A short summary"),
			Rating:      ptr(87.5),
			Genres:      `[{"id":1,"name":"RPG"},{"id":2,"name":"Action"},{"id":3,"name":"Indie"}]`,
			IsInstalled: true,
			FileSize:    1073741824,
		},
		{ID: "2", Name: "Bar"},
	}
}

func TestRenderCatalogEmptyState(t *testing.T) {
	for _, mode := range []domain.ViewMode{domain.ViewGrid, domain.ViewList} {
		tree := RenderCatalog(nil, mode)

		empty, ok := Find(tree, "empty-state")
		require.True(t, ok)
		assert.False(t, empty.Hidden)
		assert.Contains(t, Text(tree), EmptyCatalog)
		assert.Empty(t, Actions(tree))
	}

	grid, ok := Find(RenderCatalog(nil, domain.ViewGrid), "game-grid")
	require.True(t, ok)
	assert.True(t, grid.Hidden)
}

func TestRenderCatalogHidesEmptyStateWithGames(t *testing.T) {
	tree := RenderCatalog(sampleGames(), domain.ViewGrid)

	empty, ok := Find(tree, "empty-state")
	require.True(t, ok)
	assert.True(t, empty.Hidden)
	assert.NotContains(t, Text(tree), EmptyCatalog)
	assert.Len(t, FindAll(tree, "game-card"), 2)
}

func TestRenderCatalogIsIdempotent(t *testing.T) {
	games := sampleGames()
	first := RenderCatalog(games, domain.ViewGrid)
	second := RenderCatalog(games, domain.ViewGrid)

	assert.Equal(t, first, second)
	assert.Equal(t, Text(first), Text(second))
}

func TestViewModeOnlyChangesLayout(t *testing.T) {
	games := sampleGames()
	grid := RenderCatalog(games, domain.ViewGrid)
	list := RenderCatalog(games, domain.ViewList)

	assert.Equal(t, Text(grid), Text(list))
	assert.Equal(t, Actions(grid), Actions(list))
	_, ok := Find(list, "game-list")
	assert.True(t, ok)
}

func TestCardContent(t *testing.T) {
	tree := RenderCatalog(sampleGames(), domain.ViewGrid)
	cards := FindAll(tree, "game-card")
	require.Len(t, cards, 2)

	foo := Text(cards[0])
	assert.Contains(t, foo, "A short summary")
	assert.Contains(t, foo, "RPG, Action")
	assert.NotContains(t, foo, "Indie")
	assert.Contains(t, foo, "88%")
	assert.Contains(t, foo, "1 GB")

	bar := Text(cards[1])
	assert.Contains(t, bar, NoDescription)
	_, hasRating := Find(cards[1], "game-rating")
	assert.False(t, hasRating)
	assert.NotContains(t, bar, "0%")
}

func TestInstallToggleIsExclusive(t *testing.T) {
	tree := RenderCatalog(sampleGames(), domain.ViewGrid)
	cards := FindAll(tree, "game-card")

	for _, card := range cards {
		toggles := 0
		for _, a := range Actions(card) {
			if a.Kind == ActionInstall || a.Kind == ActionUninstall {
				toggles++
			}
		}
		assert.Equal(t, 1, toggles)
	}

	assert.Equal(t, []Action{
		{Kind: ActionUninstall, GameID: "1"},
		{Kind: ActionDetails, GameID: "1"},
		{Kind: ActionInstall, GameID: "2"},
		{Kind: ActionDetails, GameID: "2"},
	}, Actions(tree))
}

func TestSummaryTruncation(t *testing.T) {
	long := strings.Repeat("x", 200)
	short := strings.Repeat("y", 100)

	catalog := RenderCatalog([]domain.GameRecord{{ID: "1", Summary: &long}}, domain.ViewGrid)
	summary, ok := Find(catalog, "game-summary")
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("x", 150)+Ellipsis, summary.Text)

	store := RenderStoreResults([]domain.StoreResult{{ID: 1, Summary: &long}})
	summary, ok = Find(store, "game-summary")
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("x", 120)+Ellipsis, summary.Text)

	catalog = RenderCatalog([]domain.GameRecord{{ID: "1", Summary: &short}}, domain.ViewGrid)
	summary, _ = Find(catalog, "game-summary")
	assert.Equal(t, short, summary.Text)

	store = RenderStoreResults([]domain.StoreResult{{ID: 1, Summary: &short}})
	summary, _ = Find(store, "game-summary")
	assert.Equal(t, short, summary.Text)
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "ééé"+Ellipsis, Truncate("éééé", 3))
	assert.Equal(t, "ééé", Truncate("ééé", 3))
}

func TestMalformedGenresRenderEmptyTag(t *testing.T) {
	for _, raw := range []domain.TagList{"not json", `{"name":"RPG"}`, "", `[1,2]`} {
		tree := RenderCatalog([]domain.GameRecord{{ID: "1", Name: "Foo", Genres: raw}}, domain.ViewGrid)
		genre, ok := Find(tree, "game-genre")
		require.True(t, ok)
		assert.Empty(t, genre.Text)
	}
}

func TestFormatRatingRoundsHalfUp(t *testing.T) {
	assert.Equal(t, "88%", FormatRating(87.5))
	assert.Equal(t, "87%", FormatRating(87.49))
	assert.Equal(t, "0%", FormatRating(0.2))
	assert.Equal(t, "100%", FormatRating(100))
}

func TestRenderStoreResultsEmpty(t *testing.T) {
	tree := RenderStoreResults(nil)
	assert.Equal(t, NoStoreResults, Text(tree))
	assert.Empty(t, Actions(tree))
}

func TestRenderStoreResults(t *testing.T) {
	tree := RenderStoreResults([]domain.StoreResult{
		{ID: 1025, Name: "Zelda", Rating: ptr(91.2), Cover: &domain.Cover{URL: "//images.igdb.com/igdb/image/upload/t_thumb/co1.jpg"}},
		{ID: 7, Name: "Metroid"},
	})

	cards := FindAll(tree, "store-game-card")
	require.Len(t, cards, 2)

	cover, ok := Find(cards[0], "game-cover")
	require.True(t, ok)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_cover_big/co1.jpg", cover.Src)
	assert.Contains(t, Text(cards[0]), "91%")

	_, ok = Find(cards[1], "game-cover-placeholder")
	assert.True(t, ok)
	assert.Contains(t, Text(cards[1]), NoDescription)

	assert.Equal(t, []Action{
		{Kind: ActionAddFromStore, StoreID: 1025},
		{Kind: ActionAddFromStore, StoreID: 7},
	}, Actions(tree))
}

func TestStoreCoverURL(t *testing.T) {
	assert.Equal(t, "https://x/t_cover_big/a.jpg", StoreCoverURL("//x/t_thumb/a.jpg"))
	assert.Equal(t, "https://x/t_cover_big/a.jpg", StoreCoverURL("https://x/t_thumb/a.jpg"))
}

func TestRenderDetailFallbacks(t *testing.T) {
	tree := RenderDetail(domain.GameRecord{ID: "9", Name: "Bare", Genres: "garbage"})
	text := Text(tree)

	assert.Contains(t, text, "Developer: Unknown")
	assert.Contains(t, text, "Publisher: Unknown")
	assert.Contains(t, text, "Release Year: Unknown")
	assert.Contains(t, text, "Genres: Unknown")
	assert.Contains(t, text, "Platforms: Unknown")
	assert.Contains(t, text, "Status: Not Installed")
	assert.NotContains(t, text, "Rating:")
	assert.NotContains(t, text, "Summary:")
	assert.NotContains(t, text, "Storyline:")

	assert.Equal(t, []Action{
		{Kind: ActionInstall, GameID: "9"},
		{Kind: ActionUpdateMetadata, GameID: "9"},
	}, Actions(tree))
}

func TestRenderDetailFull(t *testing.T) {
	release := time.Date(2017, 3, 3, 0, 0, 0, 0, time.UTC)
	tree := RenderDetail(domain.GameRecord{
		ID:          "9",
		Name:        "Breath of the Wild",
		Developer:   ptr("Nintendo EPD"),
		Publisher:   ptr("Nintendo"),
		ReleaseDate: &release,
		Genres:      `[{"name":"Adventure"},{"name":"RPG"},{"name":"Open World"}]`,
		Platforms:   `[{"name":"Switch"}]`,
		Rating:      ptr(97.4),
		Summary:     ptr("Step into a world."),
		Storyline:   ptr("Link awakens."),
		IsInstalled: true,
	})
	text := Text(tree)

	assert.Contains(t, text, "Release Year: 2017")
	assert.Contains(t, text, "Genres: Adventure, RPG, Open World")
	assert.Contains(t, text, "Platforms: Switch")
	assert.Contains(t, text, "Rating: 97%")
	assert.Contains(t, text, "Status: Installed")
	assert.Contains(t, text, "Step into a world.")
	assert.Contains(t, text, "Link awakens.")

	assert.Equal(t, []Action{
		{Kind: ActionUninstall, GameID: "9"},
		{Kind: ActionUpdateMetadata, GameID: "9"},
	}, Actions(tree))
}

func TestRenderSidebar(t *testing.T) {
	state := domain.ViewState{Filter: domain.FilterInstalled, Section: domain.SectionStore}
	tree := RenderSidebar(state, domain.CategoryCounts{All: 2, Installed: 1, Uninstalled: 1}, domain.LibraryStats{TotalGames: 2, TotalSize: 0})
	text := Text(tree)

	assert.Contains(t, text, "All Games (2)")
	assert.Contains(t, text, "Installed (1)")
	assert.Contains(t, text, "Not Installed (1)")
	assert.Contains(t, text, "Total Games: 2")
	assert.Contains(t, text, "Total Size: 0 GB")

	for _, n := range FindAll(tree, "nav-item") {
		assert.Equal(t, n.Action.Target == string(domain.SectionStore), n.Active)
	}
	for _, n := range FindAll(tree, "category-item") {
		assert.Equal(t, n.Action.Target == string(domain.FilterInstalled), n.Active)
	}
}

func TestTextSkipsHiddenNodes(t *testing.T) {
	tree := container("root",
		el(KindText, "a", "visible"),
		Node{Kind: KindText, Class: "b", Text: "hidden", Hidden: true},
	)
	assert.Equal(t, "visible", Text(tree))

	_, ok := Find(tree, "b")
	assert.True(t, ok)
}

func TestCardsAndActionOf(t *testing.T) {
	tree := RenderCatalog(sampleGames(), domain.ViewGrid)
	cards := Cards(tree)
	require.Len(t, cards, 2)

	toggle, ok := ActionOf(cards[0], ActionInstall, ActionUninstall)
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionUninstall, GameID: "1"}, toggle)

	_, ok = ActionOf(cards[0], ActionAddFromStore)
	assert.False(t, ok)

	assert.Empty(t, Cards(RenderCatalog(nil, domain.ViewGrid)))
}
