package media

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/media"
)

// BunRepository serves asset lookups from a bun-managed database.
type BunRepository struct {
	images    repository.Repository[*media.Image]
	documents repository.Repository[*media.Document]
}

// NewBunRepository constructs an asset repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs an asset repository backed by bun
// with optional read-through caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	images := NewImageRepository(db)
	documents := NewDocumentRepository(db)
	if cacheService != nil && keySerializer != nil {
		images = repositorycache.New(images, cacheService, keySerializer)
		documents = repositorycache.New(documents, cacheService, keySerializer)
	}
	return &BunRepository{images: images, documents: documents}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) GetImage(ctx context.Context, id uuid.UUID) (*media.Image, error) {
	result, err := r.images.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "image", id.String())
	}
	if result.DeletedAt != nil {
		return nil, &media.NotFoundError{Resource: "image", Key: id.String()}
	}
	return result, nil
}

func (r *BunRepository) GetDocument(ctx context.Context, id uuid.UUID) (*media.Document, error) {
	result, err := r.documents.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "document", id.String())
	}
	if result.DeletedAt != nil {
		return nil, &media.NotFoundError{Resource: "document", Key: id.String()}
	}
	return result, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &media.NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}
