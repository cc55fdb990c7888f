package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-cms-api"
	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/internal/di"
	"github.com/goliatone/go-cms-api/internal/identity"
	"github.com/goliatone/go-cms-api/internal/markdown"
	"github.com/goliatone/go-cms-api/media"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/redirects"
	"github.com/google/uuid"
)

//go:embed content
var contentFS embed.FS

var (
	heroID     = uuid.MustParse("bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb1")
	brochureID = uuid.MustParse("bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb2")
)

func main() {
	ctx := context.Background()

	cfg := cmsapi.DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"
	cfg.Site.MediaBaseURL = "https://media.example.com"
	cfg.API.Title = "Example Delivery API"
	cfg.Features.TypedBlocks = true
	cfg.Features.Logger = true

	registry := pages.NewRegistry()
	registerDefinitions(registry)
	blockRegistry := blocks.NewRegistry()
	registerBlocks(blockRegistry)

	siteFS, err := fs.Sub(contentFS, "content")
	if err != nil {
		log.Fatalf("content filesystem: %v", err)
	}
	content, err := markdown.NewService(markdown.Config{
		FS:            siteFS,
		DefaultLocale: "en",
		Locales:       []string{"en"},
		Recursive:     true,
	}, nil)
	if err != nil {
		log.Fatalf("markdown service: %v", err)
	}

	module, err := cmsapi.New(cfg,
		di.WithDefinitions(registry),
		di.WithBlocks(blockRegistry),
		di.WithMarkdownParser(content.Parser()),
	)
	if err != nil {
		log.Fatalf("initialise delivery module: %v", err)
	}

	if err := seedContent(ctx, module, content); err != nil {
		log.Fatalf("seed content: %v", err)
	}

	if err := module.BuildSchemas(ctx); err != nil {
		log.Fatalf("build schemas: %v", err)
	}

	doc, err := module.OpenAPI(ctx)
	if err != nil {
		log.Fatalf("openapi document: %v", err)
	}
	fmt.Printf("%s %s exposes %d paths and %d components\n",
		doc.Info.Title, doc.Info.Version, len(doc.Paths), len(doc.Components.Schemas))

	listed, err := module.Pages().List(ctx, pages.ListOptions{})
	if err != nil {
		log.Fatalf("list pages: %v", err)
	}
	prettyPrint("live pages", summarize(listed))

	mux := http.NewServeMux()
	if err := module.Register(mux); err != nil {
		log.Fatalf("register routes: %v", err)
	}

	addr := ":8080"
	if fromEnv := strings.TrimSpace(os.Getenv("CMS_API_ADDR")); fromEnv != "" {
		addr = fromEnv
	}
	log.Printf("delivery API listening on %s (docs at %s/docs)", addr, cfg.API.BasePath)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func registerBlocks(registry *blocks.Registry) {
	registry.MustRegister(&blocks.Definition{Name: "heading", Kind: blocks.KindText})
	registry.MustRegister(&blocks.Definition{Name: "paragraph", Kind: blocks.KindRichText})
	registry.MustRegister(&blocks.Definition{
		Name: "cta",
		Kind: blocks.KindStruct,
		Children: []blocks.Child{
			{Name: "label", Block: "heading"},
			{Name: "url", Block: "heading"},
		},
	})
}

func registerDefinitions(registry *pages.Registry) {
	registry.MustRegister(&pages.Definition{
		Label: "standard.page",
		Name:  "Standard Page",
		Fields: []pages.Field{
			{Name: "intro", Spec: pages.FieldSpec{Kind: pages.KindText}},
			{Name: "body", Spec: pages.FieldSpec{Kind: pages.KindRichText, Required: true}},
			{Name: "hero_image", Spec: pages.FieldSpec{Kind: pages.KindImage}},
			{Name: "attachment", Spec: pages.FieldSpec{Kind: pages.KindDocument}},
			{Name: "sections", Spec: pages.FieldSpec{
				Kind:   pages.KindStream,
				Blocks: []string{"heading", "paragraph", "cta"},
			}},
		},
		Computed: map[string]pages.Computed{
			"reading_minutes": {
				Resolve: func(ctx context.Context, page *pages.Page) (any, error) {
					raw, _ := page.Field("body")
					text, _ := raw.(string)
					words := len(strings.Fields(text))
					return words/200 + 1, nil
				},
				Type: func() map[string]any {
					return map[string]any{"type": "integer", "minimum": 1}
				},
			},
		},
	})
}

// seedContent loads the embedded Markdown tree into the memory page store and
// backfills the media and redirect records the documents reference.
func seedContent(ctx context.Context, module *cmsapi.Module, content *markdown.Service) error {
	container := module.Container()

	docs, err := content.LoadDirectory(ctx, ".", markdown.LoadOptions{})
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	seeder := markdown.NewSeeder(markdown.SeederConfig{
		Sink:          container.PageSink(),
		Definitions:   module.Definitions(),
		DefaultType:   "standard.page",
		DefaultLocale: "en",
	})
	seeded, err := seeder.SeedDocuments(docs)
	if err != nil {
		return fmt.Errorf("seed documents: %w", err)
	}
	log.Printf("seeded %d pages from markdown", len(seeded.Created))

	now := time.Now().UTC()
	assets := container.MemoryMedia()
	assets.PutImage(&media.Image{
		ID:        heroID,
		Title:     "Hero",
		File:      "hero.jpg",
		Width:     1200,
		Height:    630,
		CreatedAt: now,
		UpdatedAt: now,
	})
	assets.PutDocument(&media.Document{
		ID:        brochureID,
		Title:     "Brochure",
		File:      "brochure.pdf",
		CreatedAt: now,
		UpdatedAt: now,
	})

	homeID := identity.PageUUID("en", "home")
	container.MemoryRedirects().Put(&redirects.Redirect{
		ID:          identity.RedirectUUID("/index"),
		OldPath:     "/index",
		PageID:      &homeID,
		IsPermanent: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return nil
}

func summarize(list []*pages.Page) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, page := range list {
		out = append(out, map[string]any{
			"id":     page.ID,
			"title":  page.Title,
			"path":   page.Path,
			"status": page.EffectiveStatus,
		})
	}
	return out
}

func prettyPrint(label string, payload any) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Printf("%s: marshal failed: %v", label, err)
		return
	}
	fmt.Printf("== %s ==\n%s\n", label, raw)
}
