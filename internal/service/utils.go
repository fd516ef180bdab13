package service

import (
	"context"
)

const (
	defaultPageSize = 100
	maxPages        = 1000
)

// fetchAll walks a paginated listing until total is reached or a page comes
// back empty. A total of zero means the backend does not paginate, so the
// first page is the whole result.
func fetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, offset, limit int) ([]T, int, error),
	pageSize int,
) ([]T, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	all := make([]T, 0)
	offset := 0

	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, total, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(all) >= total || len(items) == 0 {
			break
		}
		offset += pageSize
	}

	return all, nil
}
