package schemacmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-api/internal/commands"
	"github.com/goliatone/go-cms-api/internal/logging"
	cmsschema "github.com/goliatone/go-cms-api/internal/schema"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	exportOperation   = "schema.export_openapi"
	registerOperation = "schema.register"

	exportMessageType   = "cmsapi.schema.export_openapi"
	registerMessageType = "cmsapi.schema.register"
)

// ErrGeneratorRequired is returned when a handler is constructed without a generator.
var ErrGeneratorRequired = errors.New("schema command: generator is required")

var (
	_ command.Commander[ExportOpenAPICommand]   = (*ExportOpenAPIHandler)(nil)
	_ command.Commander[RegisterSchemasCommand] = (*RegisterSchemasHandler)(nil)
)

// ExportOpenAPICommand writes the generated OpenAPI document to a file.
type ExportOpenAPICommand struct {
	// Path is the destination file; parent directories are created.
	Path string
	// Pretty indents the JSON output for documents checked into repos.
	Pretty bool
}

// Type implements command.Message.
func (ExportOpenAPICommand) Type() string { return exportMessageType }

// Validate satisfies command.Message.
func (c ExportOpenAPICommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ExportOpenAPIHandler renders the schema document to disk via the shared
// command handler foundation.
type ExportOpenAPIHandler struct {
	inner *commands.Handler[ExportOpenAPICommand]
}

// NewExportOpenAPIHandler creates a handler bound to the supplied generator.
func NewExportOpenAPIHandler(generator *schemagen.Generator, logger interfaces.Logger, opts ...commands.HandlerOption[ExportOpenAPICommand]) *ExportOpenAPIHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportOpenAPICommand) error {
		if generator == nil {
			return ErrGeneratorRequired
		}

		path := strings.TrimSpace(msg.Path)
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("schema export: create directory %s: %w", dir, err)
			}
		}

		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("schema export: create %s: %w", path, err)
		}

		if err := generator.WriteTo(ctx, file, msg.Pretty); err != nil {
			file.Close()
			return fmt.Errorf("schema export: write %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("schema export: close %s: %w", path, err)
		}

		logging.WithFields(baseLogger, map[string]any{
			"path":   path,
			"pretty": msg.Pretty,
		}).Info("schema.command.export.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportOpenAPICommand]{
		commands.WithLogger[ExportOpenAPICommand](baseLogger),
		commands.WithOperation[ExportOpenAPICommand](exportOperation),
		commands.WithMessageFields(func(msg ExportOpenAPICommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Pretty {
				fields["pretty"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportOpenAPICommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportOpenAPIHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportOpenAPICommand].
func (h *ExportOpenAPIHandler) Execute(ctx context.Context, msg ExportOpenAPICommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ExportOpenAPIHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the OpenAPI export.
func (h *ExportOpenAPIHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"schema", "export"},
		Group:       "schema",
		Description: "Write the generated OpenAPI document to a file",
	}
}

// RegisterSchemasCommand rebuilds schemas and publishes the per-page-type
// projections to the configured schema registry.
type RegisterSchemasCommand struct{}

// Type implements command.Message.
func (RegisterSchemasCommand) Type() string { return registerMessageType }

// Validate satisfies command.Message.
func (RegisterSchemasCommand) Validate() error {
	return validation.ValidateStruct(&RegisterSchemasCommand{})
}

type registerHandlerConfig struct {
	cronConfig  command.HandlerConfig
	handlerOpts []commands.HandlerOption[RegisterSchemasCommand]
}

// RegisterHandlerOption customises the register handler.
type RegisterHandlerOption func(*registerHandlerConfig)

// RegisterWithCronConfig overrides the cron registration options for the register handler.
func RegisterWithCronConfig(config command.HandlerConfig) RegisterHandlerOption {
	return func(cfg *registerHandlerConfig) {
		cfg.cronConfig = config
	}
}

// RegisterWithCronExpression overrides the cron expression for the register handler.
func RegisterWithCronExpression(expression string) RegisterHandlerOption {
	return func(cfg *registerHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// RegisterWithHandlerOptions forwards options to the underlying command handler.
func RegisterWithHandlerOptions(opts ...commands.HandlerOption[RegisterSchemasCommand]) RegisterHandlerOption {
	return func(cfg *registerHandlerConfig) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// RegisterSchemasHandler publishes generated schemas via the shared command
// handler foundation.
type RegisterSchemasHandler struct {
	inner      *commands.Handler[RegisterSchemasCommand]
	cronConfig command.HandlerConfig
}

// NewRegisterSchemasHandler creates a handler publishing to the provided registry.
func NewRegisterSchemasHandler(generator *schemagen.Generator, registry cmsschema.Registry, logger interfaces.Logger, opts ...RegisterHandlerOption) *RegisterSchemasHandler {
	cfg := registerHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, _ RegisterSchemasCommand) error {
		if generator == nil {
			return ErrGeneratorRequired
		}
		if _, err := generator.Rebuild(ctx); err != nil {
			return err
		}
		return generator.RegisterSchemas(ctx, registry)
	}

	handlerOpts := []commands.HandlerOption[RegisterSchemasCommand]{
		commands.WithLogger[RegisterSchemasCommand](baseLogger),
		commands.WithOperation[RegisterSchemasCommand](registerOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[RegisterSchemasCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, cfg.handlerOpts...)

	return &RegisterSchemasHandler{
		inner:      commands.NewHandler(exec, handlerOpts...),
		cronConfig: cfg.cronConfig,
	}
}

// Execute satisfies command.Commander[RegisterSchemasCommand].
func (h *RegisterSchemasHandler) Execute(ctx context.Context, msg RegisterSchemasCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand by binding schema publication to a cron runner.
func (h *RegisterSchemasHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), RegisterSchemasCommand{})
	}
}

// CronOptions satisfies command.CronCommand by returning the configured cron metadata.
func (h *RegisterSchemasHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the register handler to CLI integrations.
func (h *RegisterSchemasHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for schema registration.
func (h *RegisterSchemasHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"schema", "register"},
		Group:       "schema",
		Description: "Rebuild page type schemas and publish them to the registry",
	}
}
