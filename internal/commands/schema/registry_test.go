package schemacmd

import (
	"errors"
	"testing"

	"github.com/goliatone/go-cms-api/internal/commands"
	"github.com/goliatone/go-cms-api/internal/commands/fixtures"
	"github.com/goliatone/go-cms-api/internal/logging"
	command "github.com/goliatone/go-command"
)

func TestRegisterSchemaCommandsHandlerOptionsApplied(t *testing.T) {
	exportApplied := false
	registerApplied := false

	_, err := RegisterSchemaCommands(nil, testGenerator(t), &captureRegistry{}, nil,
		WithExportHandlerOptions(func(h *commands.Handler[ExportOpenAPICommand]) {
			exportApplied = true
		}),
		WithRegisterHandlerOptions(RegisterWithHandlerOptions(func(h *commands.Handler[RegisterSchemasCommand]) {
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
	reg := fixtures.NewRecordingRegistry()

	set, err := RegisterSchemaCommands(reg, testGenerator(t), &captureRegistry{}, nil)
	if err != nil {
		t.Fatalf("register schema commands: %v", err)
	}
	if set == nil {
		t.Fatal("expected handler set returned")
	}
	if set.Export == nil || set.Register == nil {
		t.Fatalf("expected export and register handlers, got %#v", set)
	}
	if len(reg.Handlers) != 2 {
		t.Fatalf("expected two handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.Export {
		t.Fatalf("expected export handler registered first, got %#v", reg.Handlers[0])
	}
	if reg.Handlers[1] != set.Register {
		t.Fatalf("expected register handler registered second, got %#v", reg.Handlers[1])
	}
}

func TestRegisterSchemaCommandsNilRegistrySkipsRegistration(t *testing.T) {
	set, err := RegisterSchemaCommands(nil, testGenerator(t), &captureRegistry{}, nil)
	if err != nil {
		t.Fatalf("register schema commands: %v", err)
	}
	if set == nil || set.Export == nil || set.Register == nil {
		t.Fatalf("expected handlers built when registry nil, got %#v", set)
	}
}

func TestRegisterSchemaCommandsNilGeneratorError(t *testing.T) {
	if _, err := RegisterSchemaCommands(nil, nil, &captureRegistry{}, nil); !errors.Is(err, ErrGeneratorRequired) {
		t.Fatalf("expected generator required error, got %v", err)
	}
}

func TestRegisterSchemaCronRegistersHandler(t *testing.T) {
	capture := &captureRegistry{}
	handler := NewRegisterSchemasHandler(testGenerator(t), capture, logging.NoOp())
	recorder := fixtures.NewCronRecorder()

	cfg := command.HandlerConfig{Expression: "@hourly"}
	if err := RegisterSchemaCron(recorder.Registrar(), handler, cfg); err != nil {
		t.Fatalf("register schema cron: %v", err)
	}

	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.Registrations))
	}
	reg := recorder.Registrations[0]
	if reg.Config.Expression != cfg.Expression {
		t.Fatalf("expected cron expression %q, got %q", cfg.Expression, reg.Config.Expression)
	}
	if reg.Handler == nil {
		t.Fatal("expected cron handler function recorded")
	}
	if err := reg.Handler(); err != nil {
		t.Fatalf("executing cron handler: %v", err)
	}
	if _, ok := capture.entries["standard.page"]; !ok {
		t.Fatalf("expected cron execution to publish projections, got %v", capture.entries)
	}
}

func TestRegisterSchemaCronNoOpWhenRegistrarNil(t *testing.T) {
	handler := NewRegisterSchemasHandler(testGenerator(t), &captureRegistry{}, logging.NoOp())
	if err := RegisterSchemaCron(nil, handler, command.HandlerConfig{}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
}

func TestRegisterSchemaCronNoOpWhenHandlerNil(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	if err := RegisterSchemaCron(recorder.Registrar(), nil, command.HandlerConfig{}); err != nil {
		t.Fatalf("expected nil error when handler nil, got %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no registrations when handler nil, got %d", len(recorder.Registrations))
	}
}
