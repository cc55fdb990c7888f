package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrImageNotFound    = errors.New("media: image not found")
	ErrDocumentNotFound = errors.New("media: document not found")
)

// NotFoundError reports a missing asset lookup with the key that failed.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "media: asset not found"
	}
	return fmt.Sprintf("media: %s %s not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Resource {
	case "document":
		return ErrDocumentNotFound
	default:
		return ErrImageNotFound
	}
}

// Service resolves media assets referenced from page fields.
type Service interface {
	GetImage(ctx context.Context, id uuid.UUID) (*Image, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
}
