package schemaadapter

import (
	"context"

	"github.com/goliatone/go-cms-api/internal/commands"
	schemacmd "github.com/goliatone/go-cms-api/internal/commands/schema"
	"github.com/goliatone/go-cms-api/internal/logging"
	cmsschema "github.com/goliatone/go-cms-api/internal/schema"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the schema command handlers produced by RegisterSchemaCommands.
type HandlerSet struct {
	Export   *schemacmd.ExportOpenAPIHandler
	Register *schemacmd.RegisterSchemasHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	exportHandlerOpts   []commands.HandlerOption[schemacmd.ExportOpenAPICommand]
	registerHandlerOpts []schemacmd.RegisterHandlerOption
}

// WithExportHandlerOptions forwards options to the ExportOpenAPIHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[schemacmd.ExportOpenAPICommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// WithRegisterHandlerOptions forwards options to the RegisterSchemasHandler constructor.
func WithRegisterHandlerOptions(opts ...schemacmd.RegisterHandlerOption) Option {
	return func(cfg *options) {
		cfg.registerHandlerOpts = append(cfg.registerHandlerOpts, opts...)
	}
}

// RegisterSchemaCommands builds schema command handlers and registers them with the provided
// registry. A HandlerSet containing the constructed handlers is returned so callers can wire
// additional integrations (dispatcher, cron) as needed.
func RegisterSchemaCommands(reg CommandRegistry, generator *schemagen.Generator, schemaRegistry cmsschema.Registry, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if generator == nil {
		return nil, schemacmd.ErrGeneratorRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.ModuleLogger(provider, "cmsapi.commands.schema")
	logger = logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": "schema",
	})

	exportHandler := schemacmd.NewExportOpenAPIHandler(generator, logger, cfg.exportHandlerOpts...)
	registerHandler := schemacmd.NewRegisterSchemasHandler(generator, schemaRegistry, logger, cfg.registerHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(exportHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(registerHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Export:   exportHandler,
		Register: registerHandler,
	}, nil
}

// RegisterSchemaCron wires the register handler into a cron registrar using the supplied
// command configuration. The handler is executed with a background context.
func RegisterSchemaCron(reg CronRegistrar, handler *schemacmd.RegisterSchemasHandler, cfg command.HandlerConfig) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), schemacmd.RegisterSchemasCommand{})
	})
}
