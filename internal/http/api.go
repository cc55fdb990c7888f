package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/internal/serialize"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	"github.com/goliatone/go-cms-api/redirects"
)

// API registers the read-only delivery endpoints for pages and redirects,
// plus the generated OpenAPI document and its docs page.
type API struct {
	basePath   string
	docs       bool
	validate   bool
	pages      pages.Service
	redirects  redirects.Service
	serializer *serialize.Serializer
	generator  *schemagen.Generator
	urls       *serialize.URLBuilder
	logger     interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs the delivery API.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api/v2",
		docs:     true,
		validate: true,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.urls == nil {
		api.urls = serialize.NewURLBuilder(runtimeconfig.Config{API: runtimeconfig.APIConfig{BasePath: api.basePath}}, nil)
	}
	return api
}

// WithConfig applies the mount point and feature toggles from runtime config.
func WithConfig(cfg runtimeconfig.Config) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(cfg.API.BasePath); trimmed != "" {
			api.basePath = trimmed
		}
		api.docs = cfg.API.DocsEnabled
		api.validate = cfg.Features.ValidateResponses
	}
}

// WithBasePath overrides the base API path (defaults to "/api/v2").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPageService wires the page read service.
func WithPageService(service pages.Service) Option {
	return func(api *API) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithRedirectService wires the redirect read service.
func WithRedirectService(service redirects.Service) Option {
	return func(api *API) {
		if api != nil {
			api.redirects = service
		}
	}
}

// WithSerializer wires the response serializer.
func WithSerializer(serializer *serialize.Serializer) Option {
	return func(api *API) {
		if api != nil {
			api.serializer = serializer
		}
	}
}

// WithGenerator wires the schema generator backing the OpenAPI document and
// response validation.
func WithGenerator(generator *schemagen.Generator) Option {
	return func(api *API) {
		if api != nil {
			api.generator = generator
		}
	}
}

// WithURLBuilder wires the URL builder used for find redirects.
func WithURLBuilder(urls *serialize.URLBuilder) Option {
	return func(api *API) {
		if api != nil && urls != nil {
			api.urls = urls
		}
	}
}

// WithResponseValidation toggles validation of serialized payloads against
// the generated schemas before they are written.
func WithResponseValidation(enabled bool) Option {
	return func(api *API) {
		if api != nil {
			api.validate = enabled
		}
	}
}

// WithDocs toggles the interactive docs page.
func WithDocs(enabled bool) Option {
	return func(api *API) {
		if api != nil {
			api.docs = enabled
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the delivery endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerPageRoutes(mux, base)
	api.registerRedirectRoutes(mux, base)
	api.registerSchemaRoutes(mux, base)

	return nil
}

// checkResponse validates a serialized payload against a named component.
// Disabled validation short-circuits; schema build failures surface as
// server errors because they mean the API is misconfigured.
func (api *API) checkResponse(ctx context.Context, component string, payload any) error {
	if api == nil || !api.validate || api.generator == nil {
		return nil
	}
	result, err := api.generator.Build(ctx)
	if err != nil {
		return err
	}
	return result.Validator.Validate(component, payload)
}

// detailComponent picks the response component for a page type label,
// falling back to the base envelope for unprojected types.
func (api *API) detailComponent(ctx context.Context, label string) (string, error) {
	if api == nil || api.generator == nil {
		return schemagen.PageComponent, nil
	}
	result, err := api.generator.Build(ctx)
	if err != nil {
		return "", err
	}
	if component, ok := result.DetailComponent(label); ok {
		return component, nil
	}
	return schemagen.PageComponent, nil
}
