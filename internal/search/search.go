package search

import (
	"log/slog"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/gamehub/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Result is a jump palette match with highlight positions
type Result struct {
	Game           domain.GameRecord
	MatchedIndexes []int // Rune positions in Game.Name
	Score          int   // Higher is better
	Distance       int   // Edit distance to the query, used as a tie-break
}

// Index implements sahilm/fuzzy.Source over game names
type Index struct {
	games      []domain.GameRecord
	lowerNames []string
}

// NewIndex builds an index over games. The slice is not copied.
func NewIndex(games []domain.GameRecord) *Index {
	lower := make([]string, len(games))
	for i, g := range games {
		lower[i] = strings.ToLower(g.Name)
	}
	return &Index{games: games, lowerNames: lower}
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of games (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.games) }

// Service ranks catalog games for the jump palette
type Service struct {
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Find returns the games whose names fuzzy-match query, best first. An empty
// query returns nil.
func (s *Service) Find(query string, idx *Index) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx == nil || idx.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Game:           idx.games[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
			Distance:       lfuzzy.LevenshteinDistance(query, m.Str),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Distance < results[j].Distance
	})

	s.logger.Debug("palette search", "query", query, "results", len(results))
	return results
}

// Suggest returns up to limit names close to query when Find comes back
// empty, so a misspelled query still offers something to jump to.
func (s *Service) Suggest(query string, idx *Index, limit int) []domain.GameRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx == nil || idx.Len() == 0 {
		return nil
	}

	type scored struct {
		index    int
		distance int
	}
	var candidates []scored
	maxDistance := len([]rune(query))/2 + 1
	for i, name := range idx.lowerNames {
		d := lfuzzy.LevenshteinDistance(query, name)
		if d <= maxDistance {
			candidates = append(candidates, scored{index: i, distance: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	games := make([]domain.GameRecord, len(candidates))
	for i, c := range candidates {
		games[i] = idx.games[c.index]
	}
	return games
}
