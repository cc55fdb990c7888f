package serialize_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/internal/fields"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/internal/serialize"
	"github.com/goliatone/go-cms-api/media"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	"github.com/goliatone/go-cms-api/redirects"
	urlkit "github.com/goliatone/go-urlkit"
)

var serializeNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type stubMarkdown struct{}

func (stubMarkdown) Parse(markdown []byte) ([]byte, error) {
	return []byte("<p>" + strings.TrimSpace(string(markdown)) + "</p>"), nil
}

func (s stubMarkdown) ParseWithOptions(markdown []byte, _ interfaces.ParseOptions) ([]byte, error) {
	return s.Parse(markdown)
}

type stubMedia struct {
	images    map[uuid.UUID]*media.Image
	documents map[uuid.UUID]*media.Document
}

func (s *stubMedia) GetImage(_ context.Context, id uuid.UUID) (*media.Image, error) {
	if img, ok := s.images[id]; ok {
		return img, nil
	}
	return nil, &media.NotFoundError{Resource: "image", Key: id.String()}
}

func (s *stubMedia) GetDocument(_ context.Context, id uuid.UUID) (*media.Document, error) {
	if doc, ok := s.documents[id]; ok {
		return doc, nil
	}
	return nil, &media.NotFoundError{Resource: "document", Key: id.String()}
}

func siteConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"
	cfg.Site.MediaBaseURL = "https://cdn.example.com"
	return cfg
}

func registerStandardPage(t *testing.T) *pages.Registry {
	t.Helper()
	registry := pages.NewRegistry()
	registry.MustRegister(&pages.Definition{
		Label: "standard.page",
		Name:  "Standard Page",
		Fields: []pages.Field{
			{Name: "body", Spec: pages.FieldSpec{Kind: pages.KindRichText, Required: true}},
			{Name: "rating", Spec: pages.FieldSpec{Kind: pages.KindInteger}},
			{Name: "hero_image", Spec: pages.FieldSpec{Kind: pages.KindImage}},
			{Name: "related", Spec: pages.FieldSpec{Kind: pages.KindReference}},
		},
		Computed: map[string]pages.Computed{
			"reading_time": {
				Resolve: func(ctx context.Context, page *pages.Page) (any, error) {
					body, _ := page.Field("body")
					text, _ := body.(string)
					return len(strings.Fields(text))/200 + 1, nil
				},
				Type: func() map[string]any {
					return map[string]any{"type": "integer", "minimum": 0}
				},
			},
		},
	})
	return registry
}

func testPage() *pages.Page {
	first := serializeNow.Add(-48 * time.Hour)
	last := serializeNow.Add(-time.Hour)
	return &pages.Page{
		ID:               uuid.MustParse("8b8f1f46-7a16-4f6f-9f4b-0f4fbb0a2b01"),
		Type:             "standard.page",
		TranslationKey:   uuid.MustParse("5f0a4f57-4e7d-45dd-9a56-6b2f6e72c901"),
		Locale:           "en",
		Slug:             "about",
		Path:             "/about",
		Title:            "About Us",
		Status:           "published",
		FirstPublishedAt: &first,
		LastPublishedAt:  &last,
		Fields: map[string]any{
			"body":   "We build things.",
			"rating": 5,
		},
	}
}

func newSerializer(t *testing.T, opts ...serialize.Option) *serialize.Serializer {
	t.Helper()
	registry := registerStandardPage(t)
	urls := serialize.NewURLBuilder(siteConfig(), nil)
	base := []serialize.Option{
		serialize.WithURLBuilder(urls),
		serialize.WithMarkdown(stubMarkdown{}),
	}
	return serialize.New(registry, fields.New(), append(base, opts...)...)
}

func TestPageSummaryEnvelope(t *testing.T) {
	serializer := newSerializer(t)
	page := testPage()

	out, err := serializer.PageSummary(context.Background(), page)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out["id"] != page.ID {
		t.Fatalf("expected page id, got %v", out["id"])
	}
	if out["title"] != "About Us" || out["content_type"] != "standard.page" {
		t.Fatalf("unexpected envelope: %v", out)
	}
	meta, ok := out["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected meta map, got %T", out["meta"])
	}
	if meta["detail_url"] != "https://example.com/api/v2/pages/"+page.ID.String() {
		t.Fatalf("unexpected detail_url: %v", meta["detail_url"])
	}
	if meta["html_url"] != "https://example.com/about" {
		t.Fatalf("unexpected html_url: %v", meta["html_url"])
	}
	if meta["slug"] != "about" || meta["locale"] != "en" {
		t.Fatalf("unexpected meta: %v", meta)
	}
	if meta["first_published_at"] != page.FirstPublishedAt.UTC().Format(time.RFC3339) {
		t.Fatalf("unexpected first_published_at: %v", meta["first_published_at"])
	}
	if _, present := meta["show_in_menus"]; present {
		t.Fatalf("summary meta should not carry detail keys: %v", meta)
	}
}

func TestPageDetailRendersFields(t *testing.T) {
	serializer := newSerializer(t)
	page := testPage()

	out, err := serializer.PageDetail(context.Background(), page)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if out["body"] != "<p>We build things.</p>" {
		t.Fatalf("expected rendered richtext, got %v", out["body"])
	}
	if out["rating"] != 5 {
		t.Fatalf("expected rating passthrough, got %v", out["rating"])
	}
	if out["reading_time"] != 1 {
		t.Fatalf("expected computed reading_time, got %v", out["reading_time"])
	}
	if _, present := out["hero_image"]; present {
		t.Fatalf("optional absent field should be omitted: %v", out)
	}

	meta := out["meta"].(map[string]any)
	if meta["show_in_menus"] != false {
		t.Fatalf("expected show_in_menus, got %v", meta["show_in_menus"])
	}
	if meta["seo_title"] != "" || meta["search_description"] != "" {
		t.Fatalf("expected empty seo defaults, got %v", meta)
	}
	if meta["parent"] != nil {
		t.Fatalf("expected nil parent for root page, got %v", meta["parent"])
	}
}

func TestPageDetailParentLink(t *testing.T) {
	parent := &pages.Page{
		ID:    uuid.MustParse("3f6d5cb4-4c1b-4e3a-a8e4-0f2d3c4b5a60"),
		Type:  "standard.page",
		Slug:  "company",
		Path:  "/company",
		Title: "Company",
	}
	lookup := func(_ context.Context, id uuid.UUID) (*pages.Page, error) {
		if id == parent.ID {
			return parent, nil
		}
		return nil, &pages.NotFoundError{Key: id.String()}
	}
	serializer := newSerializer(t, serialize.WithPageLookup(lookup))

	page := testPage()
	page.ParentID = &parent.ID

	out, err := serializer.PageDetail(context.Background(), page)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	meta := out["meta"].(map[string]any)
	link, ok := meta["parent"].(map[string]any)
	if !ok {
		t.Fatalf("expected parent link, got %v", meta["parent"])
	}
	if link["title"] != "Company" {
		t.Fatalf("unexpected parent title: %v", link)
	}
	linkMeta := link["meta"].(map[string]any)
	if linkMeta["html_url"] != "https://example.com/company" {
		t.Fatalf("unexpected parent html_url: %v", linkMeta)
	}
}

func TestPageDetailUnknownDefinition(t *testing.T) {
	serializer := newSerializer(t)
	page := testPage()
	page.Type = "missing.page"

	if _, err := serializer.PageDetail(context.Background(), page); !errors.Is(err, pages.ErrDefinitionUnknown) {
		t.Fatalf("expected ErrDefinitionUnknown, got %v", err)
	}
}

func TestPageDetailNestsImages(t *testing.T) {
	imageID := uuid.MustParse("11e6b6a1-2f6c-4d4e-a301-1a651b2b1111")
	assets := &stubMedia{images: map[uuid.UUID]*media.Image{
		imageID: {ID: imageID, Title: "Team", File: "team.jpg", Width: 1200, Height: 800},
	}}
	serializer := newSerializer(t, serialize.WithMedia(assets))

	page := testPage()
	page.Fields["hero_image"] = imageID.String()

	out, err := serializer.PageDetail(context.Background(), page)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	img, ok := out["hero_image"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested image, got %v", out["hero_image"])
	}
	if img["title"] != "Team" || img["width"] != 1200 {
		t.Fatalf("unexpected image payload: %v", img)
	}
	imgMeta := img["meta"].(map[string]any)
	if imgMeta["type"] != serialize.ImageMetaType {
		t.Fatalf("unexpected image meta type: %v", imgMeta)
	}
	if imgMeta["download_url"] != "https://cdn.example.com/team.jpg" {
		t.Fatalf("unexpected download_url: %v", imgMeta)
	}
}

func TestPageDetailMissingImageIsNull(t *testing.T) {
	serializer := newSerializer(t, serialize.WithMedia(&stubMedia{}))

	page := testPage()
	page.Fields["hero_image"] = uuid.NewString()

	out, err := serializer.PageDetail(context.Background(), page)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	value, present := out["hero_image"]
	if !present {
		t.Fatalf("expected hero_image present")
	}
	if value != nil {
		t.Fatalf("expected null for missing image, got %v", value)
	}
}

func TestPageDetailNormalizesReferences(t *testing.T) {
	serializer := newSerializer(t)
	page := testPage()
	first := uuid.NewString()
	second := uuid.NewString()
	page.Fields["related"] = []any{first, second, "not-a-uuid"}

	out, err := serializer.PageDetail(context.Background(), page)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	refs, ok := out["related"].([]any)
	if !ok {
		t.Fatalf("expected reference list, got %v", out["related"])
	}
	if len(refs) != 2 || refs[0] != first || refs[1] != second {
		t.Fatalf("unexpected references: %v", refs)
	}
}

func TestStreamSerializationHonorsHooks(t *testing.T) {
	blockRegistry := blocks.NewRegistry()
	blockRegistry.MustRegister(&blocks.Definition{Name: "heading", Kind: blocks.KindText})
	blockRegistry.MustRegister(&blocks.Definition{
		Name: "shout",
		Kind: blocks.KindText,
		Serialize: func(value any) (any, error) {
			text, _ := value.(string)
			return strings.ToUpper(text), nil
		},
	})

	registry := pages.NewRegistry()
	registry.MustRegister(&pages.Definition{
		Label: "landing.page",
		Fields: []pages.Field{
			{Name: "sections", Spec: pages.FieldSpec{Kind: pages.KindStream, Blocks: []string{"heading", "shout"}, Required: true}},
		},
	})

	serializer := serialize.New(registry, fields.New(fields.WithBlocks(blockRegistry)),
		serialize.WithBlocks(blockRegistry),
		serialize.WithURLBuilder(serialize.NewURLBuilder(siteConfig(), nil)),
	)

	page := &pages.Page{
		ID:    uuid.New(),
		Type:  "landing.page",
		Slug:  "landing",
		Path:  "/landing",
		Title: "Landing",
		Fields: map[string]any{
			"sections": []any{
				map[string]any{"type": "heading", "value": "Welcome", "id": "b1"},
				map[string]any{"type": "shout", "value": "hello"},
			},
		},
	}

	out, err := serializer.PageDetail(context.Background(), page)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	stream, ok := out["sections"].([]any)
	if !ok || len(stream) != 2 {
		t.Fatalf("expected two stream entries, got %v", out["sections"])
	}
	first := stream[0].(map[string]any)
	if first["type"] != "heading" || first["value"] != "Welcome" || first["id"] != "b1" {
		t.Fatalf("unexpected first block: %v", first)
	}
	second := stream[1].(map[string]any)
	if second["value"] != "HELLO" {
		t.Fatalf("expected serialize hook output, got %v", second)
	}
	if _, present := second["id"]; present {
		t.Fatalf("expected id omitted when empty, got %v", second)
	}
}

func TestRedirectSerialization(t *testing.T) {
	target := &pages.Page{
		ID:   uuid.MustParse("47f4f3a2-91cd-4c5e-8f44-9f1f1c6b0a77"),
		Path: "/new-home",
	}
	lookup := func(_ context.Context, id uuid.UUID) (*pages.Page, error) {
		if id == target.ID {
			return target, nil
		}
		return nil, &pages.NotFoundError{Key: id.String()}
	}
	serializer := newSerializer(t, serialize.WithPageLookup(lookup))

	toURL := "https://elsewhere.example.com/"
	external := &redirects.Redirect{
		ID:          uuid.New(),
		OldPath:     "/old",
		ToURL:       &toURL,
		IsPermanent: true,
	}
	out, err := serializer.Redirect(context.Background(), external)
	if err != nil {
		t.Fatalf("redirect: %v", err)
	}
	if out["location"] != "https://elsewhere.example.com/" {
		t.Fatalf("expected explicit destination, got %v", out["location"])
	}
	if out["is_permanent"] != true || out["old_path"] != "/old" {
		t.Fatalf("unexpected redirect payload: %v", out)
	}

	linked := &redirects.Redirect{
		ID:      uuid.New(),
		OldPath: "/moved",
		PageID:  &target.ID,
	}
	out, err = serializer.Redirect(context.Background(), linked)
	if err != nil {
		t.Fatalf("redirect: %v", err)
	}
	if out["location"] != "https://example.com/new-home" {
		t.Fatalf("expected page destination, got %v", out["location"])
	}

	dangling := &redirects.Redirect{ID: uuid.New(), OldPath: "/gone"}
	out, err = serializer.Redirect(context.Background(), dangling)
	if err != nil {
		t.Fatalf("redirect: %v", err)
	}
	if out["location"] != nil {
		t.Fatalf("expected null location, got %v", out["location"])
	}
}

func TestURLBuilderUsesRouteManager(t *testing.T) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "api",
				BaseURL: "https://api.example.com",
				Paths: map[string]string{
					"page_detail":     "/api/v2/pages/:id",
					"redirect_detail": "/api/v2/redirects/:id",
				},
			},
			{
				Name:    "site",
				BaseURL: "https://www.example.com",
				Paths: map[string]string{
					"page_html":      "/:path",
					"media_download": "/media/:file",
				},
			},
		},
	})

	urls := serialize.NewURLBuilder(siteConfig(), manager)
	id := uuid.MustParse("8b8f1f46-7a16-4f6f-9f4b-0f4fbb0a2b01")
	if got := urls.PageDetailURL(id); got != "https://api.example.com/api/v2/pages/"+id.String() {
		t.Fatalf("unexpected detail url: %s", got)
	}
	if got := urls.RedirectDetailURL(id); got != "https://api.example.com/api/v2/redirects/"+id.String() {
		t.Fatalf("unexpected redirect url: %s", got)
	}
	page := &pages.Page{ID: id, Path: "/about"}
	if got := urls.PageHTMLURL(page); got != "https://www.example.com/about" {
		t.Fatalf("unexpected html url: %s", got)
	}
	if got := urls.MediaDownloadURL("team.jpg"); got != "https://www.example.com/media/team.jpg" {
		t.Fatalf("unexpected media url: %s", got)
	}
}

func TestURLBuilderFallsBackWithoutManager(t *testing.T) {
	urls := serialize.NewURLBuilder(siteConfig(), nil)
	id := uuid.New()
	want := fmt.Sprintf("https://example.com/api/v2/redirects/%s", id)
	if got := urls.RedirectDetailURL(id); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := urls.MediaDownloadURL("/team.jpg"); got != "https://cdn.example.com/team.jpg" {
		t.Fatalf("unexpected media fallback: %s", got)
	}
}
