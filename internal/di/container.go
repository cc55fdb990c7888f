// Package di wires the delivery API object graph: repositories, services,
// the serializer, the schema generator, and the HTTP surface. Hosts supply
// overrides through options; everything else falls back to memory-backed
// defaults driven by runtimeconfig.
package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/internal/fields"
	cmshttp "github.com/goliatone/go-cms-api/internal/http"
	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/internal/logging/console"
	"github.com/goliatone/go-cms-api/internal/logging/gologger"
	"github.com/goliatone/go-cms-api/internal/markdown"
	mediastore "github.com/goliatone/go-cms-api/internal/media"
	pagestore "github.com/goliatone/go-cms-api/internal/pages"
	redirectstore "github.com/goliatone/go-cms-api/internal/redirects"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/internal/serialize"
	"github.com/goliatone/go-cms-api/media"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	"github.com/goliatone/go-cms-api/redirects"
)

// ErrBunDBRequired indicates the configuration selected bun storage without
// supplying a database handle.
var ErrBunDBRequired = errors.New("di: bun storage requires a database handle (use WithBunDB)")

// Container holds the wired dependency graph for one runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	definitions *pages.Registry
	blockDefs   *blocks.Registry

	pageRepo     pagestore.Repository
	redirectRepo redirectstore.Repository
	mediaRepo    mediastore.Repository

	memoryPages     *pagestore.MemoryRepository
	memoryRedirects *redirectstore.MemoryRepository
	memoryMedia     *mediastore.MemoryRepository

	routeManager   *urlkit.RouteManager
	clock          func() time.Time
	markdownParser interfaces.MarkdownParser

	resolver   *fields.Resolver
	urls       *serialize.URLBuilder
	serializer *serialize.Serializer
	generator  *schemagen.Generator

	pageSvc     pages.Service
	redirectSvc redirects.Service
	mediaSvc    media.Service

	api *cmshttp.API
}

// Option mutates the container before wiring is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database handle backing bun repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithDefinitions supplies the page type registry.
func WithDefinitions(registry *pages.Registry) Option {
	return func(c *Container) {
		c.definitions = registry
	}
}

// WithBlocks supplies the stream block registry.
func WithBlocks(registry *blocks.Registry) Option {
	return func(c *Container) {
		c.blockDefs = registry
	}
}

// WithPageRepository overrides the page repository binding.
func WithPageRepository(repo pagestore.Repository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithRedirectRepository overrides the redirect repository binding.
func WithRedirectRepository(repo redirectstore.Repository) Option {
	return func(c *Container) {
		c.redirectRepo = repo
	}
}

// WithMediaRepository overrides the media repository binding.
func WithMediaRepository(repo mediastore.Repository) Option {
	return func(c *Container) {
		c.mediaRepo = repo
	}
}

// WithRouteManager overrides the urlkit route manager built from configuration.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithClock overrides the time source used for publication windows.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithMarkdownParser overrides the parser rendering richtext fields.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.markdownParser = parser
	}
}

// WithPageService overrides the page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithRedirectService overrides the redirect service binding.
func WithRedirectService(svc redirects.Service) Option {
	return func(c *Container) {
		c.redirectSvc = svc
	}
}

// WithMediaService overrides the media service binding.
func WithMediaService(svc media.Service) Option {
	return func(c *Container) {
		c.mediaSvc = svc
	}
}

// NewContainer validates the configuration and wires the dependency graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		clock:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureNavigation()

	if c.definitions == nil {
		c.definitions = pages.NewRegistry()
	}
	if c.markdownParser == nil {
		c.markdownParser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}

	c.resolver = fields.New(
		fields.WithBlocks(c.blockDefs),
		fields.WithTypedBlocks(cfg.Features.TypedBlocks),
	)

	if c.pageSvc == nil {
		c.pageSvc = pagestore.NewService(c.pageRepo, c.definitions,
			pagestore.WithClock(c.clock),
			pagestore.WithLocales(cfg.DefaultLocale, cfg.Locales),
			pagestore.WithLogger(logging.PagesLogger(c.loggerProvider)),
		)
	}
	if c.redirectSvc == nil {
		c.redirectSvc = redirectstore.NewService(c.redirectRepo,
			redirectstore.WithLogger(logging.RedirectsLogger(c.loggerProvider)),
		)
	}
	if c.mediaSvc == nil {
		c.mediaSvc = c.mediaRepo
	}

	c.urls = serialize.NewURLBuilder(cfg, c.routeManager)
	c.serializer = serialize.New(c.definitions, c.resolver,
		serialize.WithBlocks(c.blockDefs),
		serialize.WithMedia(c.mediaSvc),
		serialize.WithMarkdown(c.markdownParser),
		serialize.WithURLBuilder(c.urls),
		serialize.WithPageLookup(c.pageSvc.Get),
		serialize.WithLogger(logging.ModuleLogger(c.loggerProvider, "cmsapi.serialize")),
	)
	c.generator = schemagen.New(cfg, c.definitions,
		schemagen.WithBlocks(c.blockDefs),
		schemagen.WithResolver(c.resolver),
		schemagen.WithLogger(logging.SchemaLogger(c.loggerProvider)),
	)

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := consoleLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cacheCfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "bun" && c.bunDB == nil {
		return ErrBunDBRequired
	}

	if c.bunDB != nil {
		if c.pageRepo == nil {
			c.pageRepo = pagestore.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.redirectRepo == nil {
			c.redirectRepo = redirectstore.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.mediaRepo == nil {
			c.mediaRepo = mediastore.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		return nil
	}

	if c.pageRepo == nil {
		c.memoryPages = pagestore.NewMemoryRepository()
		c.pageRepo = c.memoryPages
	}
	if c.redirectRepo == nil {
		c.memoryRedirects = redirectstore.NewMemoryRepository()
		c.redirectRepo = c.memoryRedirects
	}
	if c.mediaRepo == nil {
		c.memoryMedia = mediastore.NewMemoryRepository()
		c.mediaRepo = c.memoryMedia
	}
	return nil
}

func (c *Container) configureNavigation() {
	if c.routeManager != nil {
		return
	}
	if c.Config.Routes.Manager == nil {
		return
	}
	c.routeManager = urlkit.NewRouteManager(c.Config.Routes.Manager)
}

// BuildSchemas forces schema generation, surfacing definition and factory
// errors before the first request needs them.
func (c *Container) BuildSchemas(ctx context.Context) error {
	_, err := c.generator.Build(ctx)
	return err
}

// API returns the HTTP surface, constructing it on first use.
func (c *Container) API() *cmshttp.API {
	if c.api == nil {
		c.api = cmshttp.NewAPI(
			cmshttp.WithConfig(c.Config),
			cmshttp.WithPageService(c.pageSvc),
			cmshttp.WithRedirectService(c.redirectSvc),
			cmshttp.WithSerializer(c.serializer),
			cmshttp.WithGenerator(c.generator),
			cmshttp.WithURLBuilder(c.urls),
			cmshttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		)
	}
	return c.api
}

// LoggerProvider exposes the configured logger provider. May be nil when the
// logging feature is disabled and no provider was injected.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Definitions exposes the page type registry.
func (c *Container) Definitions() *pages.Registry {
	return c.definitions
}

// Blocks exposes the stream block registry. May be nil.
func (c *Container) Blocks() *blocks.Registry {
	return c.blockDefs
}

// PageService returns the wired page service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// RedirectService returns the wired redirect service.
func (c *Container) RedirectService() redirects.Service {
	return c.redirectSvc
}

// MediaService returns the wired media service.
func (c *Container) MediaService() media.Service {
	return c.mediaSvc
}

// Serializer returns the response serializer.
func (c *Container) Serializer() *serialize.Serializer {
	return c.serializer
}

// Generator returns the schema generator.
func (c *Container) Generator() *schemagen.Generator {
	return c.generator
}

// URLBuilder returns the URL builder shared by serializer and HTTP surface.
func (c *Container) URLBuilder() *serialize.URLBuilder {
	return c.urls
}

// RouteManager exposes the urlkit manager when route groups are configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// MarkdownParser returns the parser used for richtext rendering.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.markdownParser
}

// PageSink returns the seedable page store when the container runs on memory
// storage. Bun-backed deployments load content through migrations instead.
func (c *Container) PageSink() markdown.PageSink {
	if c.memoryPages == nil {
		return nil
	}
	return c.memoryPages
}

// MemoryRedirects returns the seedable redirect store on memory storage.
func (c *Container) MemoryRedirects() *redirectstore.MemoryRepository {
	return c.memoryRedirects
}

// MemoryMedia returns the seedable asset store on memory storage.
func (c *Container) MemoryMedia() *mediastore.MemoryRepository {
	return c.memoryMedia
}

func consoleLevel(value string) console.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
