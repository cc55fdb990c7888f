package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsRelativeBasePath(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.API.BasePath = "api/v2"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrAPIBasePathInvalid) {
		t.Fatalf("expected ErrAPIBasePathInvalid, got %v", err)
	}
}

func TestConfigValidate_DefaultLocaleMustBeListed(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []string{"en", "es"}
	cfg.DefaultLocale = "fr"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDefaultLocaleUnknown) {
		t.Fatalf("expected ErrDefaultLocaleUnknown, got %v", err)
	}
}

func TestConfigValidate_DefaultLocaleMatchIsCaseInsensitive(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []string{"EN", "es"}
	cfg.DefaultLocale = "en"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "redis"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeCacheTTL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.DefaultTTL = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigBasePath_Normalization(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"default", "/api/v2", "/api/v2"},
		{"trailing slash", "/api/v2/", "/api/v2"},
		{"root", "/", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.API.BasePath = tc.in
			if got := cfg.BasePath(); got != tc.want {
				t.Fatalf("BasePath() = %q, want %q", got, tc.want)
			}
		})
	}
}
