package redirects

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/redirects"
)

// Repository describes the redirect lookups needed by the read service.
type Repository interface {
	List(ctx context.Context) ([]*redirects.Redirect, error)
	GetByID(ctx context.Context, id uuid.UUID) (*redirects.Redirect, error)
	// GetByOldPath fetches the redirect whose normalized old path matches.
	GetByOldPath(ctx context.Context, path string) (*redirects.Redirect, error)
}

// NewRedirectRepository wires the generic bun repository for the redirect model.
func NewRedirectRepository(db *bun.DB) repository.Repository[*redirects.Redirect] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*redirects.Redirect]{
		NewRecord: func() *redirects.Redirect { return &redirects.Redirect{} },
		GetID: func(r *redirects.Redirect) uuid.UUID {
			return r.ID
		},
		SetID: func(r *redirects.Redirect, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "old_path"
		},
		GetIdentifierValue: func(r *redirects.Redirect) string {
			return r.OldPath
		},
	})
}
