package media

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/media"
)

// Repository describes the asset lookups needed by the serializer.
type Repository interface {
	GetImage(ctx context.Context, id uuid.UUID) (*media.Image, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*media.Document, error)
}

// NewImageRepository wires the generic bun repository for the image model.
func NewImageRepository(db *bun.DB) repository.Repository[*media.Image] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*media.Image]{
		NewRecord: func() *media.Image { return &media.Image{} },
		GetID: func(img *media.Image) uuid.UUID {
			return img.ID
		},
		SetID: func(img *media.Image, id uuid.UUID) {
			img.ID = id
		},
		GetIdentifier: func() string {
			return "file"
		},
		GetIdentifierValue: func(img *media.Image) string {
			return img.File
		},
	})
}

// NewDocumentRepository wires the generic bun repository for the document model.
func NewDocumentRepository(db *bun.DB) repository.Repository[*media.Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*media.Document]{
		NewRecord: func() *media.Document { return &media.Document{} },
		GetID: func(doc *media.Document) uuid.UUID {
			return doc.ID
		},
		SetID: func(doc *media.Document, id uuid.UUID) {
			doc.ID = id
		},
		GetIdentifier: func() string {
			return "file"
		},
		GetIdentifierValue: func(doc *media.Document) string {
			return doc.File
		},
	})
}
