package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/gamehub/internal/domain"
)

// AddGameForm is the raw input of the add-game form
type AddGameForm struct {
	Name     string `validate:"required"`
	IGDBID   string `validate:"omitempty,number"`
	FilePath string
}

// ValidationError reports a rejected form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidGame }

// AddOutcome describes a completed add flow. Enrichment is best-effort:
// EnrichErr is set when the game was added but metadata could not be fetched.
type AddOutcome struct {
	Game      *domain.GameRecord
	Enriched  bool
	EnrichErr error
}

// LibraryService runs catalog operations against the backend
type LibraryService struct {
	repo     domain.GameRepository
	validate *validator.Validate
	pageSize int
	logger   *slog.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(repo domain.GameRepository, pageSize int, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		pageSize: pageSize,
		logger:   logger,
	}
}

// LoadGames fetches the entire catalog, following pagination
func (s *LibraryService) LoadGames(ctx context.Context) ([]domain.GameRecord, error) {
	games, err := fetchAll(ctx, s.repo.ListGames, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}
	s.logger.Info("loaded games", "count", len(games))
	return games, nil
}

// BuildNewGame validates the form and normalizes blank optional fields to
// nil so they encode as JSON null.
func (s *LibraryService) BuildNewGame(form AddGameForm) (domain.NewGame, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.IGDBID = strings.TrimSpace(form.IGDBID)
	form.FilePath = strings.TrimSpace(form.FilePath)

	if err := s.validate.Struct(form); err != nil {
		return domain.NewGame{}, translateValidation(err)
	}

	game := domain.NewGame{Name: form.Name}
	if form.IGDBID != "" {
		id, err := strconv.ParseInt(form.IGDBID, 10, 64)
		if err != nil {
			return domain.NewGame{}, &ValidationError{Field: "IGDBID", Message: "IGDB ID must be a number"}
		}
		game.IGDBID = &id
	}
	if form.FilePath != "" {
		path := form.FilePath
		game.FilePath = &path
	}
	return game, nil
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidGame, err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return &ValidationError{Field: fe.Field(), Message: "Game name is required"}
	case "IGDBID":
		return &ValidationError{Field: fe.Field(), Message: "IGDB ID must be a number"}
	default:
		return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())}
	}
}

// AddGame validates the form, adds the game and enriches it when it links
// to the external catalog.
func (s *LibraryService) AddGame(ctx context.Context, form AddGameForm) (*AddOutcome, error) {
	game, err := s.BuildNewGame(form)
	if err != nil {
		return nil, err
	}
	return s.add(ctx, game)
}

// AddFromStore adds a store search result to the catalog
func (s *LibraryService) AddFromStore(ctx context.Context, result domain.StoreResult) (*AddOutcome, error) {
	id := result.ID
	return s.add(ctx, domain.NewGame{Name: result.Name, IGDBID: &id})
}

func (s *LibraryService) add(ctx context.Context, game domain.NewGame) (*AddOutcome, error) {
	created, err := s.repo.AddGame(ctx, game)
	if err != nil {
		if domain.IsRejected(err) {
			s.logger.Info("add game rejected", "name", game.Name, "reason", err)
		}
		return nil, fmt.Errorf("adding game %q: %w", game.Name, err)
	}

	outcome := &AddOutcome{Game: created}
	switch {
	case game.IGDBID == nil:
		// Not linked to the external catalog
	case created.ID == "":
		// Without an id there is no metadata endpoint to call
		s.logger.Warn("added game has no id, skipping enrichment", "name", game.Name)
	default:
		enriched, err := s.repo.FetchMetadata(ctx, created.ID)
		if err != nil {
			s.logger.Warn("metadata enrichment failed", "error", err, "gameID", created.ID)
			outcome.EnrichErr = err
		} else {
			outcome.Game = enriched
			outcome.Enriched = true
		}
	}

	s.logger.Info("added game", "gameID", created.ID, "name", created.Name, "enriched", outcome.Enriched)
	return outcome, nil
}

// RefreshMetadata re-fetches a game's metadata from the external catalog
func (s *LibraryService) RefreshMetadata(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	game, err := s.repo.FetchMetadata(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("refreshing metadata: %w", err)
	}
	return game, nil
}

// GameDetails fetches a single game
func (s *LibraryService) GameDetails(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	game, err := s.repo.FetchGameDetails(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("loading game details: %w", err)
	}
	return game, nil
}

// SearchStore queries the external catalog. A blank query returns no
// results without a request.
func (s *LibraryService) SearchStore(ctx context.Context, query string, limit int) ([]domain.StoreResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	s.logger.Debug("searching store", "query", query, "limit", limit)
	results, err := s.repo.SearchStore(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching store: %w", err)
	}
	return results, nil
}
