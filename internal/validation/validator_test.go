package validation

import (
	"errors"
	"testing"
)

func testDocument() map[string]any {
	return map[string]any{
		"openapi": "3.1.0",
		"info":    map[string]any{"title": "Test", "version": "1.0.0"},
		"paths":   map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{
				"page_meta": map[string]any{
					"type":     "object",
					"required": []any{"slug"},
					"properties": map[string]any{
						"slug":   map[string]any{"type": "string"},
						"locale": map[string]any{"type": "string"},
					},
				},
				"page_detail": map[string]any{
					"type":     "object",
					"required": []any{"id", "title", "meta", "reading_time"},
					"properties": map[string]any{
						"id":           map[string]any{"type": "string", "format": "uuid"},
						"title":        map[string]any{"type": "string"},
						"meta":         map[string]any{"$ref": "#/components/schemas/page_meta"},
						"reading_time": map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
		},
	}
}

func TestValidatorAcceptsMatchingPayload(t *testing.T) {
	validator, err := NewValidator(testDocument())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	payload := map[string]any{
		"id":           "1fd3cf3b-9e3c-4f0c-8f2a-0c7f2f1d5a11",
		"title":        "Home",
		"meta":         map[string]any{"slug": "home", "locale": "en"},
		"reading_time": 3,
	}
	if err := validator.Validate("page_detail", payload); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestValidatorRejectsDeclaredTypeMismatch(t *testing.T) {
	validator, err := NewValidator(testDocument())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	payload := map[string]any{
		"id":           "1fd3cf3b-9e3c-4f0c-8f2a-0c7f2f1d5a11",
		"title":        "Home",
		"meta":         map[string]any{"slug": "home"},
		"reading_time": "three minutes",
	}
	err = validator.Validate("page_detail", payload)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatalf("expected validation issues")
	}
	found := false
	for _, issue := range issues {
		if issue.Location == "/reading_time" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected issue at /reading_time, got %+v", issues)
	}
}

func TestValidatorResolvesComponentRefs(t *testing.T) {
	validator, err := NewValidator(testDocument())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	payload := map[string]any{
		"id":           "1fd3cf3b-9e3c-4f0c-8f2a-0c7f2f1d5a11",
		"title":        "Home",
		"meta":         map[string]any{"locale": "en"},
		"reading_time": 1,
	}
	err = validator.Validate("page_detail", payload)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected nested ref validation failure, got %v", err)
	}
}

func TestValidatorUnknownComponent(t *testing.T) {
	validator, err := NewValidator(testDocument())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if err := validator.Validate("missing_component", map[string]any{}); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid for unknown component, got %v", err)
	}
}
