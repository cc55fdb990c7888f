package redirects

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	"github.com/goliatone/go-cms-api/redirects"
)

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the read-side redirect service.
func NewService(repo Repository, opts ...ServiceOption) redirects.Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) List(ctx context.Context) ([]*redirects.Redirect, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*redirects.Redirect, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByPath matches a site-relative path against stored redirects. Stored
// old paths are normalized at write time, so the exact normalized form is
// tried first; a lowercased retry catches records seeded in lower case when
// the request path differs only in case.
func (s *service) FindByPath(ctx context.Context, path string) (*redirects.Redirect, error) {
	if strings.TrimSpace(path) == "" {
		return nil, redirects.ErrPathRequired
	}

	normalized := redirects.NormalizePath(path)
	record, err := s.repo.GetByOldPath(ctx, normalized)
	if err == nil {
		return record, nil
	}

	lowered := strings.ToLower(normalized)
	if lowered == normalized {
		return nil, err
	}
	var notFound *redirects.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	return s.repo.GetByOldPath(ctx, lowered)
}
