package markdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-cms-api/internal/domain"
	"github.com/goliatone/go-cms-api/internal/identity"
	pagestore "github.com/goliatone/go-cms-api/internal/pages"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
)

func seedDefinitions(tb testing.TB) *pages.Registry {
	tb.Helper()
	registry := pages.NewRegistry()
	registry.MustRegister(&pages.Definition{
		Label: "standard.page",
		Fields: []pages.Field{
			{Name: "body", Spec: pages.FieldSpec{Kind: pages.KindRichText, Required: true}},
			{Name: "subtitle", Spec: pages.FieldSpec{Kind: pages.KindText}},
		},
	})
	return registry
}

func TestSeedDocumentsBuildsPages(t *testing.T) {
	svc := newTestService(t, true)
	docs, err := svc.LoadDirectory(context.Background(), ".", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	repo := pagestore.NewMemoryRepository()
	seeder := NewSeeder(SeederConfig{
		Sink:          repo,
		Definitions:   seedDefinitions(t),
		DefaultLocale: "en",
	})

	result, err := seeder.SeedDocuments(docs)
	if err != nil {
		t.Fatalf("SeedDocuments: %v", err)
	}
	if len(result.Created) != 3 {
		t.Fatalf("expected 3 seeded pages, got %d", len(result.Created))
	}

	about, err := repo.GetByPath(context.Background(), "/about")
	if err != nil {
		t.Fatalf("about page missing: %v", err)
	}
	if about.ID != identity.PageUUID("en", "about") {
		t.Fatalf("expected deterministic id, got %s", about.ID)
	}
	if about.Status != domain.StatusPublished {
		t.Fatalf("expected published status, got %s", about.Status)
	}
	if about.FirstPublishedAt == nil || !about.FirstPublishedAt.Equal(time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected frontmatter date as publish time, got %v", about.FirstPublishedAt)
	}
	if about.SEOTitle == nil || *about.SEOTitle != "About the Team" {
		t.Fatalf("expected seo title from frontmatter, got %v", about.SEOTitle)
	}
	if body, _ := about.Fields["body"].(string); body == "" {
		t.Fatalf("expected markdown body stored as field, got %#v", about.Fields)
	}

	sibling, err := repo.GetByPath(context.Background(), "/es/about")
	if err != nil {
		t.Fatalf("es sibling missing: %v", err)
	}
	if sibling.TranslationKey != about.TranslationKey {
		t.Fatalf("expected shared translation key across locales")
	}
	if sibling.ID == about.ID {
		t.Fatalf("locale siblings must not share an id")
	}

	draft, err := repo.GetByPath(context.Background(), "/first-post")
	if err != nil {
		t.Fatalf("draft post missing: %v", err)
	}
	if draft.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %s", draft.Status)
	}
	if subtitle, _ := draft.Fields["subtitle"].(string); subtitle != "A quiet launch" {
		t.Fatalf("expected declared frontmatter field to be copied, got %#v", draft.Fields)
	}
}

func TestSeedDocumentsDeterministic(t *testing.T) {
	svc := newTestService(t, true)
	docs, err := svc.LoadDirectory(context.Background(), ".", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	first := pagestore.NewMemoryRepository()
	second := pagestore.NewMemoryRepository()
	for _, repo := range []*pagestore.MemoryRepository{first, second} {
		seeder := NewSeeder(SeederConfig{Sink: repo, Definitions: seedDefinitions(t), DefaultLocale: "en"})
		if _, err := seeder.SeedDocuments(docs); err != nil {
			t.Fatalf("SeedDocuments: %v", err)
		}
	}

	a, _ := first.GetByPath(context.Background(), "/about")
	b, _ := second.GetByPath(context.Background(), "/about")
	if a == nil || b == nil || a.ID != b.ID {
		t.Fatalf("expected identical ids across runs")
	}
}

func TestSeedDocumentUnknownType(t *testing.T) {
	seeder := NewSeeder(SeederConfig{
		Sink:        pagestore.NewMemoryRepository(),
		Definitions: seedDefinitions(t),
	})

	doc := &interfaces.Document{
		FilePath: "odd.md",
		Locale:   "en",
		FrontMatter: interfaces.FrontMatter{
			Slug: "odd",
			Type: "missing.page",
		},
	}

	_, err := seeder.SeedDocument(doc)
	if !errors.Is(err, pages.ErrDefinitionUnknown) {
		t.Fatalf("expected unknown definition error, got %v", err)
	}
}

func TestSeedDocumentRequiresSlug(t *testing.T) {
	seeder := NewSeeder(SeederConfig{
		Sink:        pagestore.NewMemoryRepository(),
		Definitions: seedDefinitions(t),
		DefaultType: "standard.page",
	})

	doc := &interfaces.Document{FilePath: "untitled.md", Locale: "en"}

	if _, err := seeder.SeedDocument(doc); !errors.Is(err, ErrSlugMissing) {
		t.Fatalf("expected slug error, got %v", err)
	}
}

func TestSeedDocumentPathOverride(t *testing.T) {
	repo := pagestore.NewMemoryRepository()
	seeder := NewSeeder(SeederConfig{
		Sink:          repo,
		Definitions:   seedDefinitions(t),
		DefaultType:   "standard.page",
		DefaultLocale: "en",
	})

	doc := &interfaces.Document{
		FilePath: "welcome.md",
		Locale:   "en",
		FrontMatter: interfaces.FrontMatter{
			Slug:   "welcome",
			Custom: map[string]any{"path": "landing/welcome"},
		},
	}

	record, err := seeder.SeedDocument(doc)
	if err != nil {
		t.Fatalf("SeedDocument: %v", err)
	}
	if record.Path != "/landing/welcome" {
		t.Fatalf("expected normalized override path, got %s", record.Path)
	}
	if record.Status != domain.StatusPublished {
		t.Fatalf("expected published default, got %s", record.Status)
	}
}
