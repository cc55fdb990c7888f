package schemaadapter

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-cms-api/internal/commands"
	schemacmd "github.com/goliatone/go-cms-api/internal/commands/schema"
	"github.com/goliatone/go-cms-api/internal/logging"
	"github.com/goliatone/go-cms-api/internal/runtimeconfig"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/pages"
	command "github.com/goliatone/go-command"
)

func testGenerator(t *testing.T) *schemagen.Generator {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"

	registry := pages.NewRegistry()
	registry.MustRegister(&pages.Definition{
		Label: "standard.page",
		Name:  "Standard Page",
		Fields: []pages.Field{
			{Name: "body", Spec: pages.FieldSpec{Kind: pages.KindRichText, Required: true}},
		},
	})
	return schemagen.New(cfg, registry)
}

func TestRegisterSchemaCommandsHandlerOptionsApplied(t *testing.T) {
	exportApplied := false
	registerApplied := false

	_, err := RegisterSchemaCommands(nil, testGenerator(t), &stubSchemaRegistry{}, nil,
		WithExportHandlerOptions(func(h *commands.Handler[schemacmd.ExportOpenAPICommand]) {
			exportApplied = true
		}),
		WithRegisterHandlerOptions(schemacmd.RegisterWithHandlerOptions(func(h *commands.Handler[schemacmd.RegisterSchemasCommand]) {
			registerApplied = true
		})),
	)
	if err != nil {
		t.Fatalf("register schema commands: %v", err)
	}
	if !exportApplied {
		t.Fatal("expected export handler options applied")
	}
	if !registerApplied {
		t.Fatal("expected register handler options applied")
	}
}

func TestRegisterSchemaCommandsRegistersHandlers(t *testing.T) {
	reg := &recordingRegistry{}

	set, err := RegisterSchemaCommands(reg, testGenerator(t), &stubSchemaRegistry{}, nil)
	if err != nil {
		t.Fatalf("register schema commands: %v", err)
	}
	if set == nil {
		t.Fatal("expected handler set returned")
	}
	if set.Export == nil || set.Register == nil {
		t.Fatalf("expected export and register handlers, got %#v", set)
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected two handlers registered, got %d", len(reg.handlers))
	}
	if reg.handlers[0] != set.Export {
		t.Fatalf("expected export handler registered first, got %#v", reg.handlers[0])
	}
	if reg.handlers[1] != set.Register {
		t.Fatalf("expected register handler registered second, got %#v", reg.handlers[1])
	}
}

func TestRegisterSchemaCommandsNilRegistrySkipsRegistration(t *testing.T) {
	set, err := RegisterSchemaCommands(nil, testGenerator(t), &stubSchemaRegistry{}, nil)
	if err != nil {
		t.Fatalf("register schema commands: %v", err)
	}
	if set == nil || set.Export == nil || set.Register == nil {
		t.Fatalf("expected handlers built when registry nil, got %#v", set)
	}
}

func TestRegisterSchemaCommandsNilGeneratorError(t *testing.T) {
	if _, err := RegisterSchemaCommands(nil, nil, &stubSchemaRegistry{}, nil); !errors.Is(err, schemacmd.ErrGeneratorRequired) {
		t.Fatalf("expected generator required error, got %v", err)
	}
}

func TestRegisterSchemaCronRegistersHandler(t *testing.T) {
	target := &stubSchemaRegistry{}
	handler := schemacmd.NewRegisterSchemasHandler(testGenerator(t), target, logging.NoOp())
	recorder := &recordingCron{}

	cfg := command.HandlerConfig{Expression: "@daily"}

	if err := RegisterSchemaCron(recorder.register, handler, cfg); err != nil {
		t.Fatalf("register schema cron: %v", err)
	}

	if len(recorder.registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.registrations))
	}
	reg := recorder.registrations[0]
	if reg.config.Expression != cfg.Expression {
		t.Fatalf("expected cron expression %q, got %q", cfg.Expression, reg.config.Expression)
	}
	if reg.handler == nil {
		t.Fatal("expected cron handler function recorded")
	}
	if err := reg.handler(); err != nil {
		t.Fatalf("executing cron handler: %v", err)
	}
	if _, ok := target.entries["standard.page"]; !ok {
		t.Fatalf("expected cron execution to publish projections, got %v", target.entries)
	}
}

func TestRegisterSchemaCronNoOpWhenRegistrarNil(t *testing.T) {
	target := &stubSchemaRegistry{}
	handler := schemacmd.NewRegisterSchemasHandler(testGenerator(t), target, logging.NoOp())
	if err := RegisterSchemaCron(nil, handler, command.HandlerConfig{}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
	if len(target.entries) != 0 {
		t.Fatalf("expected no registrations when registrar nil, got %d", len(target.entries))
	}
}

func TestRegisterSchemaCronNoOpWhenHandlerNil(t *testing.T) {
	recorder := &recordingCron{}
	if err := RegisterSchemaCron(recorder.register, nil, command.HandlerConfig{}); err != nil {
		t.Fatalf("expected nil error when handler nil, got %v", err)
	}
	if len(recorder.registrations) != 0 {
		t.Fatalf("expected no registrations when handler nil, got %d", len(recorder.registrations))
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
	err           error
}

func (r *recordingCron) register(cfg command.HandlerConfig, handler any) error {
	if r.err != nil {
		return r.err
	}
	var fn func() error
	if h, ok := handler.(func() error); ok {
		fn = h
	}
	r.registrations = append(r.registrations, cronRegistration{
		config:  cfg,
		handler: fn,
	})
	return nil
}

type stubSchemaRegistry struct {
	entries map[string]map[string]any
}

func (s *stubSchemaRegistry) Register(_ context.Context, name string, doc map[string]any) error {
	if s.entries == nil {
		s.entries = map[string]map[string]any{}
	}
	s.entries[name] = doc
	return nil
}
