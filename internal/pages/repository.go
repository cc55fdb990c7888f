package pages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/pages"
)

// Repository describes the page lookups needed by the read service.
type Repository interface {
	// List returns every non-deleted page ordered by path.
	List(ctx context.Context) ([]*pages.Page, error)
	// GetByID fetches a page by identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*pages.Page, error)
	// GetByPath fetches the page stored at the exact site-relative path.
	GetByPath(ctx context.Context, path string) (*pages.Page, error)
	// GetByTranslationKey fetches the locale sibling sharing a translation key.
	GetByTranslationKey(ctx context.Context, key uuid.UUID, locale string) (*pages.Page, error)
}

// NewPageRepository wires the generic bun repository for the page model.
func NewPageRepository(db *bun.DB) repository.Repository[*pages.Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*pages.Page]{
		NewRecord: func() *pages.Page { return &pages.Page{} },
		GetID: func(p *pages.Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *pages.Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(p *pages.Page) string {
			return p.Path
		},
	})
}
