package gameapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmcdole/gamehub/internal/domain"
)

var _ domain.GameRepository = (*Client)(nil)

// LoadGames returns the full catalog
func (c *Client) LoadGames(ctx context.Context) ([]domain.GameRecord, error) {
	var list domain.GameList
	if err := c.Call(ctx, "/games", RequestOptions{}, &list); err != nil {
		return nil, err
	}
	if list.Games == nil {
		return []domain.GameRecord{}, nil
	}
	return list.Games, nil
}

// ListGames returns one page of the catalog and the catalog's total size
func (c *Client) ListGames(ctx context.Context, offset, limit int) ([]domain.GameRecord, int, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(offset/limit+1))
	params.Set("per_page", strconv.Itoa(limit))

	var list domain.GameList
	if err := c.Call(ctx, "/games?"+params.Encode(), RequestOptions{}, &list); err != nil {
		return nil, 0, err
	}
	return list.Games, int(list.Total), nil
}

// AddGame creates a catalog entry and returns it as stored
func (c *Client) AddGame(ctx context.Context, game domain.NewGame) (*domain.GameRecord, error) {
	var created domain.GameRecord
	err := c.Call(ctx, "/games", RequestOptions{Method: http.MethodPost, Body: game}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FetchMetadata asks the backend to enrich a game from the external catalog
func (c *Client) FetchMetadata(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	var updated domain.GameRecord
	endpoint := "/games/" + url.PathEscape(gameID) + "/metadata"
	if err := c.Call(ctx, endpoint, RequestOptions{Method: http.MethodPost}, &updated); err != nil {
		return nil, notFound(err)
	}
	return &updated, nil
}

// FetchGameDetails returns a single game
func (c *Client) FetchGameDetails(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	var game domain.GameRecord
	if err := c.Call(ctx, "/games/"+url.PathEscape(gameID), RequestOptions{}, &game); err != nil {
		return nil, notFound(err)
	}
	return &game, nil
}

// SearchStore queries the external catalog
func (c *Client) SearchStore(ctx context.Context, query string, limit int) ([]domain.StoreResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []domain.StoreResult
	if err := c.Call(ctx, "/search/igdb?"+params.Encode(), RequestOptions{}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// notFound marks a 404 on a single-game endpoint as domain.ErrGameNotFound.
// The error stays a transport failure.
func notFound(err error) error {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrGameNotFound, err)
	}
	return err
}
