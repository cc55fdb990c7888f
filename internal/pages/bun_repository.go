package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/pages"
)

// BunRepository serves page lookups from a bun-managed database.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*pages.Page]
}

// NewBunRepository constructs a page repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a page repository backed by bun with
// optional read-through caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(NewPageRepository(db), cacheService, keySerializer),
	}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) List(ctx context.Context) ([]*pages.Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.path ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*pages.Page, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	if result.DeletedAt != nil {
		return nil, &pages.NotFoundError{Key: id.String()}
	}
	return result, nil
}

func (r *BunRepository) GetByPath(ctx context.Context, path string) (*pages.Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.path = ?", path).
				Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, path)
	}
	if len(records) == 0 {
		return nil, &pages.NotFoundError{Key: path}
	}
	return records[0], nil
}

func (r *BunRepository) GetByTranslationKey(ctx context.Context, key uuid.UUID, locale string) (*pages.Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.translation_key = ?", key).
				Where("?TableAlias.locale = ?", locale).
				Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, key.String())
	}
	if len(records) == 0 {
		return nil, &pages.NotFoundError{Key: fmt.Sprintf("%s@%s", key, locale)}
	}
	return records[0], nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &pages.NotFoundError{Key: key}
	}

	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
