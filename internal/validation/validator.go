package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator checks serialized responses against component schemas of a
// generated OpenAPI document. Components compile lazily on first use and
// are cached; the document itself is immutable after construction.
type Validator struct {
	document []byte

	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewValidator captures the OpenAPI document the components live in.
func NewValidator(document map[string]any) (*Validator, error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: document required", ErrSchemaInvalid)
	}
	encoded, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{
		document: encoded,
		compiled: map[string]*jsonschema.Schema{},
	}, nil
}

// Compile ensures the named component schema compiles, including any
// references into sibling components. Used at schema build so broken
// fragments fail startup instead of the first request.
func (v *Validator) Compile(component string) error {
	if v == nil {
		return fmt.Errorf("%w: validator not configured", ErrSchemaInvalid)
	}
	_, err := v.schemaFor(component)
	return err
}

// Validate checks a response payload against the named component schema.
// The payload is round-tripped through JSON first so that what gets
// validated is exactly what a client would receive.
func (v *Validator) Validate(component string, payload any) error {
	if v == nil {
		return fmt.Errorf("%w: validator not configured", ErrSchemaInvalid)
	}
	schema, err := v.schemaFor(component)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := schema.Validate(decoded); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &PayloadValidationError{
				Issues: collectValidationIssues(validationErr),
				Cause:  err,
			}
		}
		return &PayloadValidationError{Cause: err}
	}
	return nil
}

func (v *Validator) schemaFor(component string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[component]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if schema, ok := v.compiled[component]; ok {
		return schema, nil
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("openapi.json", bytes.NewReader(v.document)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	schema, err := compiler.Compile("openapi.json#/components/schemas/" + component)
	if err != nil {
		return nil, fmt.Errorf("%w: component %s: %v", ErrSchemaInvalid, component, err)
	}
	v.compiled[component] = schema
	return schema, nil
}
