package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
)

type service struct {
	repo          Repository
	registry      *pages.Registry
	logger        interfaces.Logger
	now           func() time.Time
	defaultLocale string
	locales       []string
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the time source used for visibility checks.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocales declares the locales the find endpoint may hop to. Locale
// params outside this list are silently ignored.
func WithLocales(defaultLocale string, locales []string) ServiceOption {
	return func(s *service) {
		s.defaultLocale = strings.TrimSpace(defaultLocale)
		s.locales = locales
	}
}

// NewService constructs the read-side page service.
func NewService(repo Repository, registry *pages.Registry, opts ...ServiceOption) pages.Service {
	s := &service{
		repo:     repo,
		registry: registry,
		logger:   logging.NoOp(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns live pages ordered by path, optionally narrowed by type and
// locale.
func (s *service) List(ctx context.Context, opts pages.ListOptions) ([]*pages.Page, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := make([]*pages.Page, 0, len(records))
	for _, record := range records {
		if !record.Live(now) {
			continue
		}
		if opts.Type != "" && record.Type != opts.Type {
			continue
		}
		if opts.Locale != "" && !strings.EqualFold(record.Locale, opts.Locale) {
			continue
		}
		record.Annotate(now)
		out = append(out, record)
	}
	return out, nil
}

// Get fetches a page by identifier regardless of publication state.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*pages.Page, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Annotate(s.now().UTC())
	return record, nil
}

// FindByPath resolves a site-relative html path to a live page. A known
// locale hops to the translation-key sibling; unknown locales are ignored.
func (s *service) FindByPath(ctx context.Context, path, locale string) (*pages.Page, error) {
	normalized := normalizeHTMLPath(path)
	if normalized == "" {
		return nil, pages.ErrPathRequired
	}

	record, err := s.repo.GetByPath(ctx, normalized)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if hop := s.localeHop(locale, record); hop != "" {
		sibling, err := s.repo.GetByTranslationKey(ctx, record.TranslationKey, hop)
		switch {
		case err == nil && sibling.Live(now):
			record = sibling
		case err != nil && !errors.Is(err, pages.ErrPageNotFound):
			return nil, err
		default:
			s.logger.Debug("locale sibling unavailable, serving path match",
				"path", normalized, "locale", hop)
		}
	}

	if !record.Live(now) {
		return nil, &pages.NotFoundError{Key: normalized}
	}
	record.Annotate(now)
	return record, nil
}

// localeHop returns the locale to hop to, or "" when the request should be
// served from the page matched by path.
func (s *service) localeHop(locale string, record *pages.Page) string {
	locale = strings.TrimSpace(locale)
	if locale == "" || strings.EqualFold(locale, record.Locale) {
		return ""
	}
	if len(s.locales) == 0 {
		return locale
	}
	for _, known := range s.locales {
		if strings.EqualFold(known, locale) {
			return known
		}
	}
	return ""
}

// normalizeHTMLPath canonicalizes find paths into the stored form: a single
// leading slash, no trailing slash, "/" for the site root.
func normalizeHTMLPath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed
}
