package pages

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/pages"
)

// MemoryRepository is an in-memory page store for tests and example hosts.
type MemoryRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*pages.Page
	pathIndex map[string]uuid.UUID
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pages:     make(map[uuid.UUID]*pages.Page),
		pathIndex: make(map[string]uuid.UUID),
	}
}

var _ Repository = (*MemoryRepository)(nil)

// Put inserts or replaces a page record. Intended for seeding.
func (m *MemoryRepository) Put(record *pages.Page) {
	if record == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePage(record)
	if existing, ok := m.pages[copied.ID]; ok {
		delete(m.pathIndex, existing.Path)
	}
	m.pages[copied.ID] = copied
	m.pathIndex[copied.Path] = copied.ID
}

// List returns every non-deleted page ordered by path.
func (m *MemoryRepository) List(_ context.Context) ([]*pages.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*pages.Page, 0, len(m.pages))
	for _, record := range m.pages {
		if record == nil || record.DeletedAt != nil {
			continue
		}
		out = append(out, clonePage(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// GetByID retrieves a page by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*pages.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.pages[id]
	if !ok || record.DeletedAt != nil {
		return nil, &pages.NotFoundError{Key: id.String()}
	}
	return clonePage(record), nil
}

// GetByPath retrieves the page stored at the exact path.
func (m *MemoryRepository) GetByPath(_ context.Context, path string) (*pages.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[path]
	if !ok {
		return nil, &pages.NotFoundError{Key: path}
	}
	record := m.pages[id]
	if record == nil || record.DeletedAt != nil {
		return nil, &pages.NotFoundError{Key: path}
	}
	return clonePage(record), nil
}

// GetByTranslationKey retrieves the locale sibling sharing a translation key.
func (m *MemoryRepository) GetByTranslationKey(_ context.Context, key uuid.UUID, locale string) (*pages.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.pages {
		if record == nil || record.DeletedAt != nil {
			continue
		}
		if record.TranslationKey == key && record.Locale == locale {
			return clonePage(record), nil
		}
	}
	return nil, &pages.NotFoundError{Key: fmt.Sprintf("%s@%s", key, locale)}
}

func clonePage(src *pages.Page) *pages.Page {
	if src == nil {
		return nil
	}
	copied := *src
	copied.ParentID = cloneUUIDPointer(src.ParentID)
	copied.PublishAt = cloneTimePointer(src.PublishAt)
	copied.UnpublishAt = cloneTimePointer(src.UnpublishAt)
	copied.FirstPublishedAt = cloneTimePointer(src.FirstPublishedAt)
	copied.LastPublishedAt = cloneTimePointer(src.LastPublishedAt)
	copied.SEOTitle = cloneStringPointer(src.SEOTitle)
	copied.SearchDescription = cloneStringPointer(src.SearchDescription)
	copied.DeletedAt = cloneTimePointer(src.DeletedAt)
	copied.Fields = cloneAnyMap(src.Fields)
	copied.Parent = clonePage(src.Parent)
	return &copied
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	copied := make(map[string]any, len(src))
	for key, value := range src {
		copied[key] = value
	}
	return copied
}
