package pages

import (
	"context"

	"github.com/google/uuid"
)

// Service describes the read-side page lookups served by the delivery API.
type Service interface {
	// List returns live pages ordered by path.
	List(ctx context.Context, opts ListOptions) ([]*Page, error)
	// Get fetches a page by identifier regardless of publication state.
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	// FindByPath resolves a site-relative html path to a live page. A
	// non-empty locale asks for the translation-key sibling in that locale;
	// unknown locales fall back to the page matched by path.
	FindByPath(ctx context.Context, path, locale string) (*Page, error)
}

// ListOptions narrows page listings.
type ListOptions struct {
	// Type filters by definition label when set.
	Type string
	// Locale filters by page locale when set.
	Locale string
}
