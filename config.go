package cmsapi

import "github.com/goliatone/go-cms-api/internal/runtimeconfig"

var (
	ErrAPIBasePathInvalid      = runtimeconfig.ErrAPIBasePathInvalid
	ErrDefaultLocaleUnknown    = runtimeconfig.ErrDefaultLocaleUnknown
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	APIConfig     = runtimeconfig.APIConfig
	SiteConfig    = runtimeconfig.SiteConfig
	RouteConfig   = runtimeconfig.RouteConfig
	URLKitConfig  = runtimeconfig.URLKitConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
