package cmsapi

import (
	"context"
	"net/http"

	"github.com/goliatone/go-cms-api/internal/di"
	cmshttp "github.com/goliatone/go-cms-api/internal/http"
	"github.com/goliatone/go-cms-api/internal/openapi"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/internal/serialize"
	"github.com/goliatone/go-cms-api/media"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/redirects"
)

// PageService exports the page read service contract.
type PageService = pages.Service

// RedirectService exports the redirect read service contract.
type RedirectService = redirects.Service

// MediaService exports the media lookup contract.
type MediaService = media.Service

// Serializer exports the response serializer used by the delivery endpoints.
type Serializer = serialize.Serializer

// SchemaGenerator exports the response schema and OpenAPI document generator.
type SchemaGenerator = schemagen.Generator

// API exports the HTTP delivery surface.
type API = cmshttp.API

// Module represents the top level delivery API façade.
type Module struct {
	container *di.Container
}

// New constructs a delivery module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Redirects returns the configured redirect service.
func (m *Module) Redirects() RedirectService {
	return m.container.RedirectService()
}

// Media returns the media lookup helper used by the module.
func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// Definitions returns the page type definition registry.
func (m *Module) Definitions() *pages.Registry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Definitions()
}

// Serializer returns the configured response serializer.
func (m *Module) Serializer() *Serializer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Serializer()
}

// Schemas returns the generator backing response schemas and the OpenAPI document.
func (m *Module) Schemas() *SchemaGenerator {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Generator()
}

// BuildSchemas resolves every exposed field and memoizes the generated
// schemas. Calling it during startup surfaces definition mistakes before
// the first request does.
func (m *Module) BuildSchemas(ctx context.Context) error {
	return m.container.BuildSchemas(ctx)
}

// OpenAPI returns the generated OpenAPI document.
func (m *Module) OpenAPI(ctx context.Context) (*openapi.Document, error) {
	return m.container.Generator().OpenAPI(ctx)
}

// API returns the HTTP delivery surface.
func (m *Module) API() *API {
	return m.container.API()
}

// Register attaches the delivery endpoints to the provided mux.
func (m *Module) Register(mux *http.ServeMux) error {
	return m.container.API().Register(mux)
}
