package redirects

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/redirects"
)

// MemoryRepository is an in-memory redirect store for tests and example hosts.
type MemoryRepository struct {
	mu        sync.RWMutex
	redirects map[uuid.UUID]*redirects.Redirect
	pathIndex map[string]uuid.UUID
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		redirects: make(map[uuid.UUID]*redirects.Redirect),
		pathIndex: make(map[string]uuid.UUID),
	}
}

var _ Repository = (*MemoryRepository)(nil)

// Put inserts or replaces a redirect record, normalizing its old path.
// Intended for seeding.
func (m *MemoryRepository) Put(record *redirects.Redirect) {
	if record == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRedirect(record)
	copied.OldPath = redirects.NormalizePath(copied.OldPath)
	if existing, ok := m.redirects[copied.ID]; ok {
		delete(m.pathIndex, existing.OldPath)
	}
	m.redirects[copied.ID] = copied
	m.pathIndex[copied.OldPath] = copied.ID
}

// List returns every non-deleted redirect ordered by old path.
func (m *MemoryRepository) List(_ context.Context) ([]*redirects.Redirect, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*redirects.Redirect, 0, len(m.redirects))
	for _, record := range m.redirects {
		if record == nil || record.DeletedAt != nil {
			continue
		}
		out = append(out, cloneRedirect(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OldPath < out[j].OldPath })
	return out, nil
}

// GetByID retrieves a redirect by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*redirects.Redirect, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.redirects[id]
	if !ok || record.DeletedAt != nil {
		return nil, &redirects.NotFoundError{Key: id.String()}
	}
	return cloneRedirect(record), nil
}

// GetByOldPath retrieves a redirect by its normalized old path.
func (m *MemoryRepository) GetByOldPath(_ context.Context, path string) (*redirects.Redirect, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[path]
	if !ok {
		return nil, &redirects.NotFoundError{Key: path}
	}
	record := m.redirects[id]
	if record == nil || record.DeletedAt != nil {
		return nil, &redirects.NotFoundError{Key: path}
	}
	return cloneRedirect(record), nil
}

func cloneRedirect(src *redirects.Redirect) *redirects.Redirect {
	if src == nil {
		return nil
	}
	copied := *src
	if src.ToURL != nil {
		value := *src.ToURL
		copied.ToURL = &value
	}
	if src.PageID != nil {
		value := *src.PageID
		copied.PageID = &value
	}
	if src.DeletedAt != nil {
		value := *src.DeletedAt
		copied.DeletedAt = &value
	}
	return &copied
}
