package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/internal/domain"
	"github.com/goliatone/go-cms-api/internal/identity"
	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
)

var (
	ErrSinkRequired  = errors.New("markdown seeder: page sink is required")
	ErrSlugMissing   = errors.New("markdown seeder: frontmatter slug is required")
	ErrLocaleMissing = errors.New("markdown seeder: locale could not be determined")
	ErrTypeMissing   = errors.New("markdown seeder: page type could not be determined")
)

// PageSink receives seeded page records. The memory repository satisfies it.
type PageSink interface {
	Put(record *pages.Page)
}

// SeederConfig encapsulates the dependencies needed to turn documents into pages.
type SeederConfig struct {
	// Sink stores the produced records.
	Sink PageSink
	// Definitions validates page types and scopes which frontmatter keys
	// become stored fields.
	Definitions *pages.Registry
	// DefaultType applies when frontmatter carries no type.
	DefaultType string
	// DefaultLocale keeps its pages at root-level paths; other locales are
	// prefixed, e.g. /es/hola.
	DefaultLocale string
	// BodyField names the stored field receiving the Markdown body. Defaults
	// to "body" and only applies when the definition declares the field.
	BodyField string
	Logger    interfaces.Logger
}

// Seeder converts Markdown documents into page records with deterministic
// identifiers, so repeated seeding runs produce the same rows.
type Seeder struct {
	sink          PageSink
	definitions   *pages.Registry
	defaultType   string
	defaultLocale string
	bodyField     string
	logger        interfaces.Logger
}

// NewSeeder builds a Seeder from the supplied configuration.
func NewSeeder(cfg SeederConfig) *Seeder {
	bodyField := strings.TrimSpace(cfg.BodyField)
	if bodyField == "" {
		bodyField = "body"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Seeder{
		sink:          cfg.Sink,
		definitions:   cfg.Definitions,
		defaultType:   strings.TrimSpace(cfg.DefaultType),
		defaultLocale: strings.TrimSpace(cfg.DefaultLocale),
		bodyField:     bodyField,
		logger:        logger,
	}
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Created []uuid.UUID
	Skipped []string
}

// SeedDocument converts a single document and stores the resulting page.
func (s *Seeder) SeedDocument(doc *interfaces.Document) (*pages.Page, error) {
	if s.sink == nil {
		return nil, ErrSinkRequired
	}
	record, err := s.buildPage(doc)
	if err != nil {
		return nil, err
	}
	s.sink.Put(record)
	return record, nil
}

// SeedDocuments converts every document, storing pages as it goes. Documents
// marked draft are seeded too; the read service keeps them invisible until
// they are published.
func (s *Seeder) SeedDocuments(docs []*interfaces.Document) (*SeedResult, error) {
	if s.sink == nil {
		return nil, ErrSinkRequired
	}

	result := &SeedResult{}
	for _, doc := range docs {
		record, err := s.buildPage(doc)
		if err != nil {
			return result, err
		}
		s.sink.Put(record)
		result.Created = append(result.Created, record.ID)
	}

	s.logger.Info("seeded pages from markdown", "count", len(result.Created))
	return result, nil
}

func (s *Seeder) buildPage(doc *interfaces.Document) (*pages.Page, error) {
	if doc == nil {
		return nil, errors.New("markdown seeder: nil document")
	}

	slug := strings.TrimSpace(doc.FrontMatter.Slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: %s", ErrSlugMissing, doc.FilePath)
	}
	locale := strings.TrimSpace(doc.Locale)
	if locale == "" {
		return nil, fmt.Errorf("%w: %s", ErrLocaleMissing, doc.FilePath)
	}

	pageType := strings.TrimSpace(doc.FrontMatter.Type)
	if pageType == "" {
		pageType = s.defaultType
	}
	if pageType == "" {
		return nil, fmt.Errorf("%w: %s", ErrTypeMissing, doc.FilePath)
	}

	if s.definitions == nil {
		return nil, fmt.Errorf("markdown seeder: %s: %s: %w", doc.FilePath, pageType, pages.ErrDefinitionUnknown)
	}
	def, ok := s.definitions.Get(pageType)
	if !ok {
		return nil, fmt.Errorf("markdown seeder: %s: %s: %w", doc.FilePath, pageType, pages.ErrDefinitionUnknown)
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		title = fallbackTitle(slug)
	}

	record := &pages.Page{
		ID:             identity.PageUUID(locale, slug),
		Type:           pageType,
		TranslationKey: identity.TranslationKeyUUID(slug),
		Locale:         locale,
		Slug:           slug,
		Path:           s.pagePath(locale, slug, doc.FrontMatter.Custom),
		Title:          title,
		Status:         s.status(doc),
		Fields:         s.pageFields(def, doc),
	}

	if !doc.FrontMatter.Date.IsZero() && record.Status == domain.StatusPublished {
		published := doc.FrontMatter.Date.UTC()
		record.FirstPublishedAt = &published
		record.LastPublishedAt = &published
	}

	applyMetaOverrides(record, doc.FrontMatter.Custom)
	return record, nil
}

// pagePath honours an explicit frontmatter path, otherwise derives one from
// the locale and slug.
func (s *Seeder) pagePath(locale, slug string, custom map[string]any) string {
	if raw, ok := custom["path"].(string); ok && strings.TrimSpace(raw) != "" {
		path := strings.TrimSpace(raw)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return path
	}
	if s.defaultLocale == "" || strings.EqualFold(locale, s.defaultLocale) {
		return "/" + slug
	}
	return "/" + strings.ToLower(locale) + "/" + slug
}

func (s *Seeder) status(doc *interfaces.Document) domain.Status {
	if doc.FrontMatter.Draft {
		return domain.StatusDraft
	}
	if strings.TrimSpace(doc.FrontMatter.Status) == "" {
		return domain.StatusPublished
	}
	return domain.ParseStatus(doc.FrontMatter.Status)
}

// pageFields copies frontmatter values for declared fields and routes the
// Markdown body to the configured body field.
func (s *Seeder) pageFields(def *pages.Definition, doc *interfaces.Document) map[string]any {
	fields := map[string]any{}
	for _, field := range def.Fields {
		if value, ok := doc.FrontMatter.Custom[field.Name]; ok {
			fields[field.Name] = value
		}
	}
	if _, declared := def.Spec(s.bodyField); declared {
		fields[s.bodyField] = strings.TrimSpace(string(doc.Body))
	}
	return fields
}

func applyMetaOverrides(record *pages.Page, custom map[string]any) {
	if value, ok := custom["show_in_menus"].(bool); ok {
		record.ShowInMenus = value
	}
	if value, ok := custom["seo_title"].(string); ok && strings.TrimSpace(value) != "" {
		trimmed := strings.TrimSpace(value)
		record.SEOTitle = &trimmed
	}
	if value, ok := custom["search_description"].(string); ok && strings.TrimSpace(value) != "" {
		trimmed := strings.TrimSpace(value)
		record.SearchDescription = &trimmed
	}
}

func fallbackTitle(slug string) string {
	if slug == "" {
		return "Untitled"
	}
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
