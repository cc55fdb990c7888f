package pages

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FieldKind enumerates the stored field shapes a page definition may declare.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindRichText  FieldKind = "richtext"
	KindInteger   FieldKind = "integer"
	KindFloat     FieldKind = "float"
	KindBoolean   FieldKind = "boolean"
	KindDateTime  FieldKind = "datetime"
	KindChoice    FieldKind = "choice"
	KindImage     FieldKind = "image"
	KindDocument  FieldKind = "document"
	KindReference FieldKind = "reference"
	KindStream    FieldKind = "stream"
)

// Valid reports whether the kind is one of the declared enumerations.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindRichText, KindInteger, KindFloat, KindBoolean,
		KindDateTime, KindChoice, KindImage, KindDocument, KindReference,
		KindStream:
		return true
	default:
		return false
	}
}

// FieldSpec declares how a stored field is typed and serialized.
type FieldSpec struct {
	Kind     FieldKind
	Required bool
	// Choices constrains choice fields to an enumerated value set.
	Choices []string
	// Blocks names the block definitions allowed inside a stream field.
	Blocks []string
	// Schema overrides the derived JSON schema fragment when set.
	Schema map[string]any
}

// Field pairs a stored field name with its spec, preserving declaration order.
type Field struct {
	Name string
	Spec FieldSpec
}

// TypeFunc returns the JSON schema fragment describing a computed field's
// value. Factories run at schema-build time, never at registration time, so
// a definition may reference schema owned by a package that has not finished
// wiring when the definition is declared.
type TypeFunc func() map[string]any

// ResolverFunc produces the runtime value of a computed field for a page.
type ResolverFunc func(ctx context.Context, page *Page) (any, error)

// Computed declares an exposed field whose value comes from a resolver
// instead of the stored fields map. A nil Type leaves the field
// unconstrained in generated schemas.
type Computed struct {
	Resolve ResolverFunc
	Type    TypeFunc
}

// Definition registers a page type with the delivery API: the stored field
// specs, the ordered list of exposed API fields, and computed fields.
type Definition struct {
	// Label uniquely identifies the page type, e.g. "standard.page".
	Label string
	// Name is the human readable title used in generated documentation.
	Name string
	// Fields declares the stored fields in serialization order.
	Fields []Field
	// Exposed orders the field names surfaced by the API. When empty every
	// declared field is exposed in declaration order.
	Exposed []string
	// Computed maps exposed names to resolver-backed fields.
	Computed map[string]Computed
}

// Spec returns the declared spec for a stored field.
func (d *Definition) Spec(name string) (FieldSpec, bool) {
	if d == nil {
		return FieldSpec{}, false
	}
	for _, field := range d.Fields {
		if field.Name == name {
			return field.Spec, true
		}
	}
	return FieldSpec{}, false
}

// APIFields returns the exposed field names in serialization order. When
// Exposed is empty every declared field is exposed in declaration order,
// followed by computed fields sorted by name so output stays deterministic.
func (d *Definition) APIFields() []string {
	if d == nil {
		return nil
	}
	if len(d.Exposed) > 0 {
		out := make([]string, len(d.Exposed))
		copy(out, d.Exposed)
		return out
	}
	out := make([]string, 0, len(d.Fields)+len(d.Computed))
	for _, field := range d.Fields {
		out = append(out, field.Name)
	}
	if len(d.Computed) > 0 {
		names := make([]string, 0, len(d.Computed))
		for name := range d.Computed {
			names = append(names, name)
		}
		sort.Strings(names)
		out = append(out, names...)
	}
	return out
}

// Validate checks structural consistency before registration.
func (d *Definition) Validate() error {
	if d == nil || strings.TrimSpace(d.Label) == "" {
		return ErrDefinitionLabelRequired
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: definition %s", ErrFieldNameRequired, d.Label)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrFieldDuplicate, d.Label, name)
		}
		seen[name] = struct{}{}
		if !field.Spec.Kind.Valid() {
			return fmt.Errorf("%w: %s.%s kind %q", ErrFieldKindInvalid, d.Label, name, field.Spec.Kind)
		}
		if field.Spec.Kind == KindChoice && len(field.Spec.Choices) == 0 {
			return fmt.Errorf("%w: %s.%s", ErrChoicesRequired, d.Label, name)
		}
	}
	for name, computed := range d.Computed {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: definition %s", ErrFieldNameRequired, d.Label)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrFieldDuplicate, d.Label, name)
		}
		if computed.Resolve == nil {
			return fmt.Errorf("%w: %s.%s", ErrComputedResolverRequired, d.Label, name)
		}
	}
	return nil
}

// Registry holds the page definitions known to the delivery API. Definitions
// register during startup; lookups afterwards are read-mostly and safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byLabel map[string]*Definition
	order   []string
}

// NewRegistry constructs an empty definition registry.
func NewRegistry() *Registry {
	return &Registry{byLabel: map[string]*Definition{}}
}

// Register validates and stores a definition. Re-registering a label fails.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLabel[def.Label]; exists {
		return fmt.Errorf("%w: %s", ErrDefinitionExists, def.Label)
	}
	r.byLabel[def.Label] = def
	r.order = append(r.order, def.Label)
	return nil
}

// MustRegister registers a definition and panics on failure. Intended for
// package-level wiring where a bad definition is a programming error.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get looks up a definition by label.
func (r *Registry) Get(label string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byLabel[label]
	return def, ok
}

// Labels returns registered labels in registration order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
