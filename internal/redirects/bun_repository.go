package redirects

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/redirects"
)

// BunRepository serves redirect lookups from a bun-managed database.
type BunRepository struct {
	repo repository.Repository[*redirects.Redirect]
}

// NewBunRepository constructs a redirect repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a redirect repository backed by bun
// with optional read-through caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewRedirectRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) List(ctx context.Context) ([]*redirects.Redirect, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.old_path ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("redirect repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*redirects.Redirect, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	if result.DeletedAt != nil {
		return nil, &redirects.NotFoundError{Key: id.String()}
	}
	return result, nil
}

func (r *BunRepository) GetByOldPath(ctx context.Context, path string) (*redirects.Redirect, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.old_path = ?", path).
				Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, path)
	}
	if len(records) == 0 {
		return nil, &redirects.NotFoundError{Key: path}
	}
	return records[0], nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &redirects.NotFoundError{Key: key}
	}

	return fmt.Errorf("redirect repository error: %w", err)
}
