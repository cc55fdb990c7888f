package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrAPIBasePathInvalid indicates the configured mount point is not an absolute path.
var ErrAPIBasePathInvalid = errors.New("cmsapi config: api base path must start with a slash")

// ErrDefaultLocaleUnknown ensures the default locale appears in the configured locale list.
var ErrDefaultLocaleUnknown = errors.New("cmsapi config: default locale must be listed in locales")

// ErrStorageProviderUnknown rejects storage providers the container cannot build.
var ErrStorageProviderUnknown = errors.New("cmsapi config: storage provider is invalid")

// ErrCacheTTLInvalid rejects negative cache lifetimes.
var ErrCacheTTLInvalid = errors.New("cmsapi config: cache default ttl must be zero or positive")

var ErrLoggingProviderRequired = errors.New("cmsapi config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("cmsapi config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("cmsapi config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("cmsapi config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the delivery API.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Locales       []string
	API           APIConfig
	Site          SiteConfig
	Routes        RouteConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Features      Features
	Logging       LoggingConfig
}

// APIConfig shapes the HTTP surface of the delivery API.
type APIConfig struct {
	BasePath    string
	Title       string
	Version     string
	DocsEnabled bool
}

// SiteConfig captures the public origins referenced by serialized URLs.
type SiteConfig struct {
	BaseURL      string
	MediaBaseURL string
}

// RouteConfig wires go-urlkit route groups used when building detail and
// html URLs. When Manager config is nil URLs are derived from SiteConfig
// and the API base path directly.
type RouteConfig struct {
	Manager *urlkit.Config
	URLKit  URLKitConfig
}

// URLKitConfig names the groups and routes consulted by the URL builder.
type URLKitConfig struct {
	APIGroup            string
	SiteGroup           string
	PageDetailRoute     string
	RedirectDetailRoute string
	PageHTMLRoute       string
	MediaDownloadRoute  string
	IDParam             string
	PathParam           string
	FileParam           string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	TypedBlocks       bool
	ValidateResponses bool
	Logger            bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a memory-backed deployment.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Locales:       []string{"en"},
		API: APIConfig{
			BasePath:    "/api/v2",
			Title:       "CMS Delivery API",
			Version:     "1.0.0",
			DocsEnabled: true,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			ValidateResponses: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if base := strings.TrimSpace(cfg.API.BasePath); base != "" && !strings.HasPrefix(base, "/") {
		return fmt.Errorf("%w: %s", ErrAPIBasePathInvalid, base)
	}
	if len(cfg.Locales) > 0 {
		locale := strings.TrimSpace(cfg.DefaultLocale)
		if locale == "" || !containsLocale(cfg.Locales, locale) {
			return fmt.Errorf("%w: %s", ErrDefaultLocaleUnknown, locale)
		}
	}
	if provider := normalizeToken(cfg.Storage.Provider); provider != "" && !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeToken(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// BasePath returns the normalized API mount point without a trailing slash.
func (cfg Config) BasePath() string {
	base := strings.TrimSpace(cfg.API.BasePath)
	if base == "" || base == "/" {
		return ""
	}
	return strings.TrimRight(base, "/")
}

func containsLocale(locales []string, locale string) bool {
	for _, candidate := range locales {
		if strings.EqualFold(strings.TrimSpace(candidate), locale) {
			return true
		}
	}
	return false
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "memory", "bun":
		return true
	default:
		return false
	}
}

func isSupportedLogProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
