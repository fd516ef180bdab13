package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/gamehub/internal/domain"
)

// Loader fetches the full catalog from the backend
type Loader interface {
	LoadGames(ctx context.Context) ([]domain.GameRecord, error)
}

// Store owns the session's list of games. The list is only ever replaced
// wholesale; a failed load leaves the previous list in place.
type Store struct {
	mu     sync.RWMutex // Protects everything below
	games  []domain.GameRecord
	index  map[string]int
	loaded bool

	// Load tickets: a result is applied only if no newer load has landed.
	issued  uint64
	applied uint64

	logger *slog.Logger
}

// NewStore creates an empty catalog store
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		index:  make(map[string]int),
		logger: logger,
	}
}

// Load fetches the catalog and replaces the current list. On error the
// current list is untouched and the error is returned to the caller.
func (s *Store) Load(ctx context.Context, loader Loader) ([]domain.GameRecord, error) {
	ticket := s.Begin()
	games, err := loader.LoadGames(ctx)
	if err != nil {
		return nil, err
	}
	s.Apply(ticket, games)
	return s.Games(), nil
}

// Begin issues a ticket for a load that completes asynchronously
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Apply replaces the list with the result of the load identified by ticket.
// It returns false and keeps the current list when a newer load has already
// been applied.
func (s *Store) Apply(ticket uint64, games []domain.GameRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket <= s.applied {
		s.logger.Debug("discarding stale catalog load", "ticket", ticket, "applied", s.applied)
		return false
	}

	list := make([]domain.GameRecord, 0, len(games))
	index := make(map[string]int, len(games))
	for _, g := range games {
		if _, dup := index[g.ID]; dup {
			s.logger.Warn("duplicate game id in catalog", "gameID", g.ID)
			continue
		}
		index[g.ID] = len(list)
		list = append(list, g)
	}

	s.games = list
	s.index = index
	s.applied = ticket
	s.loaded = true
	return true
}

// Games returns a snapshot of the current list
func (s *Store) Games() []domain.GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GameRecord, len(s.games))
	copy(out, s.games)
	return out
}

// Loaded reports whether any load has been applied
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the number of games in the catalog
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Find looks up a game by id
func (s *Store) Find(id string) (domain.GameRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.GameRecord{}, false
	}
	return s.games[i], true
}

// Visible derives the visible subset from the current list
func (s *Store) Visible(filter domain.Filter, query string) []domain.GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return VisibleSubset(s.games, filter, query)
}

// Counts returns category counts over the unfiltered list
func (s *Store) Counts() domain.CategoryCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountsOf(s.games)
}

// Stats returns totals over the unfiltered list
func (s *Store) Stats() domain.LibraryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatsOf(s.games)
}
