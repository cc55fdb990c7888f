package media

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/media"
)

// MemoryRepository is an in-memory asset store for tests and example hosts.
type MemoryRepository struct {
	mu        sync.RWMutex
	images    map[uuid.UUID]*media.Image
	documents map[uuid.UUID]*media.Document
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		images:    make(map[uuid.UUID]*media.Image),
		documents: make(map[uuid.UUID]*media.Document),
	}
}

var _ Repository = (*MemoryRepository)(nil)

// PutImage inserts or replaces an image record. Intended for seeding.
func (m *MemoryRepository) PutImage(record *media.Image) {
	if record == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[record.ID] = cloneImage(record)
}

// PutDocument inserts or replaces a document record. Intended for seeding.
func (m *MemoryRepository) PutDocument(record *media.Document) {
	if record == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[record.ID] = cloneDocument(record)
}

// GetImage retrieves an image by identifier.
func (m *MemoryRepository) GetImage(_ context.Context, id uuid.UUID) (*media.Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.images[id]
	if !ok || record.DeletedAt != nil {
		return nil, &media.NotFoundError{Resource: "image", Key: id.String()}
	}
	return cloneImage(record), nil
}

// GetDocument retrieves a document by identifier.
func (m *MemoryRepository) GetDocument(_ context.Context, id uuid.UUID) (*media.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.documents[id]
	if !ok || record.DeletedAt != nil {
		return nil, &media.NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(record), nil
}

func cloneImage(src *media.Image) *media.Image {
	if src == nil {
		return nil
	}
	copied := *src
	if src.DeletedAt != nil {
		value := *src.DeletedAt
		copied.DeletedAt = &value
	}
	return &copied
}

func cloneDocument(src *media.Document) *media.Document {
	if src == nil {
		return nil
	}
	copied := *src
	if src.DeletedAt != nil {
		value := *src.DeletedAt
		copied.DeletedAt = &value
	}
	return &copied
}
