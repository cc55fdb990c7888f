package di_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-cms-api/domain"
	"github.com/goliatone/go-cms-api/internal/di"
	"github.com/goliatone/go-cms-api/internal/fields"
	"github.com/goliatone/go-cms-api/internal/logging/gologger"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	"github.com/goliatone/go-cms-api/pkg/testsupport"
	"github.com/google/uuid"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"
	return cfg
}

func testDefinitions(t *testing.T) *pages.Registry {
	t.Helper()
	registry := pages.NewRegistry()
	registry.MustRegister(&pages.Definition{
		Label: "standard.page",
		Name:  "Standard Page",
		Fields: []pages.Field{
			{Name: "body", Spec: pages.FieldSpec{Kind: pages.KindRichText, Required: true}},
		},
	})
	return registry
}

func TestNewContainerMemoryDefaultsServeRequests(t *testing.T) {
	container, err := di.NewContainer(testConfig(), di.WithDefinitions(testDefinitions(t)))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	sink := container.PageSink()
	if sink == nil {
		t.Fatal("expected page sink on memory storage")
	}
	if container.MemoryRedirects() == nil || container.MemoryMedia() == nil {
		t.Fatal("expected memory redirect and media stores")
	}

	now := time.Now().UTC()
	sink.Put(&pages.Page{
		ID:               uuid.MustParse("11111111-1111-4111-8111-111111111111"),
		Type:             "standard.page",
		TranslationKey:   uuid.MustParse("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"),
		Locale:           "en",
		Slug:             "hello",
		Path:             "/hello",
		Title:            "Hello",
		Status:           domain.StatusPublished,
		Fields:           map[string]any{"body": "Hello world"},
		FirstPublishedAt: &now,
		LastPublishedAt:  &now,
	})

	mux := http.NewServeMux()
	container.API().Register(mux)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v2/pages", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var payload struct {
		Meta struct {
			TotalCount int `json:"total_count"`
		} `json:"meta"`
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode list payload: %v", err)
	}
	if payload.Meta.TotalCount != 1 || len(payload.Items) != 1 {
		t.Fatalf("expected one page, got %s", recorder.Body.String())
	}
	if payload.Items[0]["title"] != "Hello" {
		t.Fatalf("expected seeded page in listing, got %#v", payload.Items[0])
	}
}

func TestNewContainerValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.API.BasePath = "api/v2"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrAPIBasePathInvalid) {
		t.Fatalf("expected base path validation error, got %v", err)
	}
}

func TestNewContainerBunStorageRequiresDB(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Provider = "bun"

	if _, err := di.NewContainer(cfg); !errors.Is(err, di.ErrBunDBRequired) {
		t.Fatalf("expected bun db requirement error, got %v", err)
	}
}

func TestNewContainerWithBunDBSkipsMemoryStores(t *testing.T) {
	db, err := testsupport.NewSQLiteBunDB(fmt.Sprintf("container_bun_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("open bun db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	cfg.Storage.Provider = "bun"

	container, err := di.NewContainer(cfg, di.WithBunDB(db), di.WithDefinitions(testDefinitions(t)))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if container.PageSink() != nil {
		t.Fatal("expected no memory page sink when bun storage is active")
	}
	if container.MemoryRedirects() != nil || container.MemoryMedia() != nil {
		t.Fatal("expected no memory stores when bun storage is active")
	}
	if container.API() == nil {
		t.Fatal("expected API wired over bun repositories")
	}
}

func TestNewContainerBuildSchemasSurfacesDefinitionErrors(t *testing.T) {
	registry := pages.NewRegistry()
	registry.MustRegister(&pages.Definition{
		Label:   "standard.page",
		Fields:  []pages.Field{{Name: "body", Spec: pages.FieldSpec{Kind: pages.KindText}}},
		Exposed: []string{"body", "missing_field"},
	})

	container, err := di.NewContainer(testConfig(), di.WithDefinitions(registry))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if err := container.BuildSchemas(context.Background()); !errors.Is(err, fields.ErrFieldUnresolved) {
		t.Fatalf("expected unresolved field error, got %v", err)
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	provider, ok := container.LoggerProvider().(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
	if provider.GetLogger("cmsapi.test") == nil {
		t.Fatal("expected logger from go-logger provider")
	}
}

func TestConfigureLoggerProviderDefaultsToConsole(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "warn"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	provider := container.LoggerProvider()
	if provider == nil {
		t.Fatal("expected console provider when logging feature enabled")
	}
	if provider.GetLogger("cmsapi.test") == nil {
		t.Fatal("expected logger from console provider")
	}
}

func TestWithLoggerProviderOverridesConfiguredProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"

	custom := staticProvider{}
	container, err := di.NewContainer(cfg, di.WithLoggerProvider(custom))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := container.LoggerProvider().(staticProvider); !ok {
		t.Fatalf("expected injected provider to win, got %T", container.LoggerProvider())
	}
}

type staticProvider struct{}

func (staticProvider) GetLogger(string) interfaces.Logger {
	return staticLogger{}
}

type staticLogger struct{}

var _ interfaces.Logger = staticLogger{}

func (staticLogger) Trace(string, ...any) {}
func (staticLogger) Debug(string, ...any) {}
func (staticLogger) Info(string, ...any)  {}
func (staticLogger) Warn(string, ...any)  {}
func (staticLogger) Error(string, ...any) {}
func (staticLogger) Fatal(string, ...any) {}

func (l staticLogger) WithContext(context.Context) interfaces.Logger { return l }
