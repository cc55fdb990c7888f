// Package schemagen builds the response schemas and OpenAPI document for
// the delivery API. Schemas derive from registered page definitions through
// the field resolver, so every exposed field name is checked and every
// computed type factory runs exactly here. The build is memoized: schemas
// are produced once per generator and shared afterwards, and a forced
// rebuild yields a structurally identical result.
package schemagen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/internal/fields"
	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/internal/openapi"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	cmsschema "github.com/goliatone/go-cms-api/internal/schema"
	"github.com/goliatone/go-cms-api/internal/validation"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
)

// Component names shared by every generated document.
const (
	PageComponent           = "page"
	PageListComponent       = "page_list"
	PageMetaComponent       = "page_meta"
	PageParentComponent     = "page_parent"
	PageDetailMetaComponent = "page_detail_meta"
	StreamBlockComponent    = "stream_block"
	StreamFieldComponent    = fields.StreamFieldSchemaName
	ImageComponent          = fields.ImageSchemaName
	DocumentComponent       = fields.DocumentSchemaName
	RedirectComponent       = "redirect"
	RedirectListComponent   = "redirect_list"
	ErrorComponent          = "error"
)

// Option configures a Generator.
type Option func(*Generator)

// WithBlocks supplies the block registry used for typed stream schemas.
func WithBlocks(registry *blocks.Registry) Option {
	return func(g *Generator) {
		g.blocks = registry
	}
}

// WithResolver overrides the field resolver.
func WithResolver(resolver *fields.Resolver) Option {
	return func(g *Generator) {
		g.resolver = resolver
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator produces response schemas and the OpenAPI document.
type Generator struct {
	cfg         runtimeconfig.Config
	definitions *pages.Registry
	blocks      *blocks.Registry
	resolver    *fields.Resolver
	logger      interfaces.Logger

	mu    sync.Mutex
	built *Result
}

// Result is one complete schema build.
type Result struct {
	// Document is the assembled OpenAPI document.
	Document *openapi.Document
	// Components maps component names to their schemas.
	Components map[string]map[string]any
	// DetailComponents maps definition labels to detail component names.
	DetailComponents map[string]string
	// Projections carry one per-page-type document each for registry
	// publication.
	Projections []*cmsschema.Projection
	// Validator validates payloads against the document's components.
	Validator *validation.Validator
}

// New constructs a generator over the definition registry.
func New(cfg runtimeconfig.Config, definitions *pages.Registry, opts ...Option) *Generator {
	g := &Generator{
		cfg:         cfg,
		definitions: definitions,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.resolver == nil {
		g.resolver = fields.New(
			fields.WithBlocks(g.blocks),
			fields.WithTypedBlocks(cfg.Features.TypedBlocks),
		)
	}
	return g
}

// Build returns the memoized schema build, producing it on first use.
// Safe for concurrent callers; the mutex is the single build barrier.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("schemagen: generator not configured")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.built != nil {
		return g.built, nil
	}
	result, err := g.build(ctx)
	if err != nil {
		return nil, err
	}
	g.built = result
	return result, nil
}

// Rebuild discards the memoized result and builds again. Rebuilding with
// unchanged definitions produces a structurally identical document.
func (g *Generator) Rebuild(ctx context.Context) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("schemagen: generator not configured")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	result, err := g.build(ctx)
	if err != nil {
		return nil, err
	}
	g.built = result
	return result, nil
}

// OpenAPI returns the generated OpenAPI document.
func (g *Generator) OpenAPI(ctx context.Context) (*openapi.Document, error) {
	result, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// DetailComponent returns the component name validating detail responses
// for a page type label.
func (r *Result) DetailComponent(label string) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.DetailComponents[label]
	return name, ok
}

// WriteTo serializes the OpenAPI document as JSON. Pretty output is meant
// for files checked into consuming repos; compact output for transport.
func (g *Generator) WriteTo(ctx context.Context, w io.Writer, pretty bool) error {
	result, err := g.Build(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result.Document.AsMap())
}

// RegisterSchemas publishes the per-page-type projections to a schema
// registry, typically the go-crud document registry.
func (g *Generator) RegisterSchemas(ctx context.Context, registry cmsschema.Registry) error {
	result, err := g.Build(ctx)
	if err != nil {
		return err
	}
	if err := cmsschema.RegisterProjections(ctx, registry, result.Projections); err != nil {
		return err
	}
	g.logger.Info("published page type schemas", "count", len(result.Projections))
	return nil
}

func (g *Generator) build(ctx context.Context) (*Result, error) {
	if g.definitions == nil {
		return nil, fmt.Errorf("schemagen: definition registry required")
	}

	components := baseComponents()
	detailComponents := map[string]string{}
	labels := g.definitions.Labels()
	detailRefs := make([]any, 0, len(labels))

	for _, label := range labels {
		def, ok := g.definitions.Get(label)
		if !ok {
			continue
		}
		component, schema, err := g.detailSchema(def)
		if err != nil {
			return nil, err
		}
		if _, exists := components[component]; exists {
			return nil, fmt.Errorf("schemagen: component name collision: %s", component)
		}
		components[component] = schema
		detailComponents[label] = component
		detailRefs = append(detailRefs, ref(component))
	}

	for name, schema := range components {
		if err := cmsschema.ValidateSchemaSubset(schema); err != nil {
			return nil, fmt.Errorf("schemagen: component %s: %w", name, err)
		}
	}

	doc := g.assembleDocument(components, labels, detailRefs)

	validator, err := validation.NewValidator(doc.AsMap())
	if err != nil {
		return nil, fmt.Errorf("schemagen: %w", err)
	}
	for name := range components {
		if err := validator.Compile(name); err != nil {
			return nil, fmt.Errorf("schemagen: %w", err)
		}
	}

	projections, err := g.projections(labels, detailComponents, components)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("schema build complete",
		"definitions", len(detailComponents),
		"components", len(components),
	)

	return &Result{
		Document:         doc,
		Components:       components,
		DetailComponents: detailComponents,
		Projections:      projections,
		Validator:        validator,
	}, nil
}

// detailSchema derives the detail response schema for one page definition:
// the base envelope plus every exposed field typed through its resolution.
func (g *Generator) detailSchema(def *pages.Definition) (string, map[string]any, error) {
	resolutions, err := g.resolver.Resolutions(def)
	if err != nil {
		return "", nil, err
	}

	properties := map[string]any{
		"id":           map[string]any{"type": "string", "format": "uuid"},
		"title":        map[string]any{"type": "string"},
		"content_type": map[string]any{"const": def.Label},
		"meta":         ref(PageDetailMetaComponent),
	}
	required := []string{"id", "title", "content_type", "meta"}

	for _, resolution := range resolutions {
		if _, exists := properties[resolution.Name]; exists {
			return "", nil, fmt.Errorf("schemagen: %s.%s collides with an envelope property", def.Label, resolution.Name)
		}
		properties[resolution.Name] = resolution.SchemaType()
		if resolution.Required() {
			required = append(required, resolution.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"title":      defTitle(def),
		"required":   required,
		"properties": properties,
	}
	return cmsschema.ComponentName(def.Label), schema, nil
}

func (g *Generator) assembleDocument(components map[string]map[string]any, labels []string, detailRefs []any) *openapi.Document {
	doc := openapi.NewDocument(g.cfg.API.Title, g.cfg.API.Version)
	if server := g.serverURL(); server != "" {
		doc.AddServer(server, "delivery api")
	}
	for name, schema := range components {
		doc.AddSchema(name, schema)
	}

	base := g.cfg.BasePath()
	var detailResponse map[string]any
	switch len(detailRefs) {
	case 0:
		detailResponse = ref(PageComponent)
	case 1:
		detailResponse = detailRefs[0].(map[string]any)
	default:
		detailResponse = map[string]any{"anyOf": detailRefs}
	}

	doc.AddPath(base+"/pages", pathItem(operation(
		"listPages", "pages", "List live pages",
		okJSON(ref(PageListComponent)), nil,
	)))
	doc.AddPath(base+"/pages/{id}", pathItem(operation(
		"getPage", "pages", "Get a page by id",
		okJSON(detailResponse),
		[]map[string]any{pathParam("id", "string", "uuid")},
	)))
	doc.AddPath(base+"/pages/find", pathItem(findOperation(
		"findPage", "pages", "Resolve an html path to a page",
		[]map[string]any{
			queryParam("html_path", true),
			queryParam("locale", false),
		},
	)))
	doc.AddPath(base+"/redirects", pathItem(operation(
		"listRedirects", "redirects", "List redirects",
		okJSON(ref(RedirectListComponent)), nil,
	)))
	doc.AddPath(base+"/redirects/{id}", pathItem(operation(
		"getRedirect", "redirects", "Get a redirect by id",
		okJSON(ref(RedirectComponent)),
		[]map[string]any{pathParam("id", "string", "uuid")},
	)))
	doc.AddPath(base+"/redirects/find", pathItem(operation(
		"findRedirect", "redirects", "Match an html path against redirects",
		okJSON(ref(RedirectComponent)),
		[]map[string]any{queryParam("html_path", true)},
	)))

	doc.SetExtension("x-cms", map[string]any{
		"page_types": append([]string{}, labels...),
	})
	return doc
}

func (g *Generator) projections(labels []string, detailComponents map[string]string, components map[string]map[string]any) ([]*cmsschema.Projection, error) {
	shared := []cmsschema.SharedSchema{
		{Name: PageMetaComponent, Schema: components[PageMetaComponent]},
		{Name: PageParentComponent, Schema: components[PageParentComponent]},
		{Name: PageDetailMetaComponent, Schema: components[PageDetailMetaComponent]},
		{Name: StreamBlockComponent, Schema: components[StreamBlockComponent]},
		{Name: StreamFieldComponent, Schema: components[StreamFieldComponent]},
		{Name: ImageComponent, Schema: components[ImageComponent]},
		{Name: DocumentComponent, Schema: components[DocumentComponent]},
	}
	out := make([]*cmsschema.Projection, 0, len(labels))
	for _, label := range labels {
		component, ok := detailComponents[label]
		if !ok {
			continue
		}
		def, _ := g.definitions.Get(label)
		projection, err := cmsschema.ProjectDefinition(label, defTitle(def), g.cfg.API.Version, components[component], shared)
		if err != nil {
			return nil, err
		}
		out = append(out, projection)
	}
	return out, nil
}

func (g *Generator) serverURL() string {
	base := g.cfg.Site.BaseURL
	if base == "" {
		return ""
	}
	return base + g.cfg.BasePath()
}

func defTitle(def *pages.Definition) string {
	if def == nil {
		return ""
	}
	if def.Name != "" {
		return def.Name
	}
	return def.Label
}
