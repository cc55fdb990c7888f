package redirects

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRedirectNotFound = errors.New("redirects: redirect not found")
	ErrPathRequired     = errors.New("redirects: html path is required")
)

// NotFoundError reports a missing redirect lookup with the key that failed.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrRedirectNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRedirectNotFound.Error(), e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRedirectNotFound
}

// Service describes the read-side redirect lookups served by the delivery API.
type Service interface {
	List(ctx context.Context) ([]*Redirect, error)
	Get(ctx context.Context, id uuid.UUID) (*Redirect, error)
	// FindByPath matches a site-relative path against stored redirects,
	// honoring path normalization.
	FindByPath(ctx context.Context, path string) (*Redirect, error)
}
