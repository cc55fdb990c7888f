// Package fields decides how each exposed API field of a page type is
// fetched and how its type is declared. A field name resolves, in order,
// to an explicit computed entry on the definition, to a page model
// attribute, or to a declared field spec; anything else is a configuration
// error. Resolutions answer both halves of the contract: Value fetches the
// runtime value from a page instance, SchemaType yields the JSON schema
// fragment used for documentation and response validation.
package fields

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/pages"
)

// Source identifies where a resolved field's value comes from.
type Source string

const (
	// SourceComputed fields run a resolver declared on the definition.
	SourceComputed Source = "computed"
	// SourceAttribute fields read a column of the page model itself.
	SourceAttribute Source = "attribute"
	// SourceStored fields read the page's jsonb field map against a
	// declared field spec.
	SourceStored Source = "stored"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithBlocks supplies the block registry consulted when stream fields are
// given structural types.
func WithBlocks(registry *blocks.Registry) Option {
	return func(r *Resolver) {
		r.blocks = registry
	}
}

// WithTypedBlocks toggles structural typing for stream field values.
// Disabled by default: block values are declared unconstrained because
// custom per-block serializers may disagree with the inferred shape.
func WithTypedBlocks(enabled bool) Option {
	return func(r *Resolver) {
		r.typedBlocks = enabled
	}
}

// Resolver maps exposed field names to resolutions for a page definition.
type Resolver struct {
	blocks      *blocks.Registry
	typedBlocks bool
}

// New constructs a field resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// TypedBlocks reports whether stream values receive structural types.
func (r *Resolver) TypedBlocks() bool {
	return r != nil && r.typedBlocks
}

// Resolve locates the value source and declared type for one exposed field.
// Stream fields referencing unregistered blocks fail here so that bad
// wiring surfaces at schema build instead of request time.
func (r *Resolver) Resolve(def *pages.Definition, name string) (Resolution, error) {
	if r == nil {
		return Resolution{}, ErrResolverRequired
	}
	if def == nil {
		return Resolution{}, ErrDefinitionRequired
	}

	if computed, ok := def.Computed[name]; ok {
		return Resolution{
			Name:     name,
			Source:   SourceComputed,
			computed: computed,
		}, nil
	}

	if attr, ok := pageAttributes()[name]; ok {
		return Resolution{
			Name:   name,
			Source: SourceAttribute,
			attr:   attr,
		}, nil
	}

	if spec, ok := def.Spec(name); ok {
		if spec.Kind == pages.KindStream {
			if err := r.checkStreamBlocks(def.Label, name, spec); err != nil {
				return Resolution{}, err
			}
		}
		return Resolution{
			Name:   name,
			Source: SourceStored,
			spec:   spec,
			blocks: r.blocks,
			typed:  r.typedBlocks,
		}, nil
	}

	return Resolution{}, &UnresolvedFieldError{Definition: def.Label, Field: name}
}

// Resolutions resolves every exposed field of the definition in API order.
func (r *Resolver) Resolutions(def *pages.Definition) ([]Resolution, error) {
	if r == nil {
		return nil, ErrResolverRequired
	}
	if def == nil {
		return nil, ErrDefinitionRequired
	}
	names := def.APIFields()
	out := make([]Resolution, 0, len(names))
	for _, name := range names {
		resolution, err := r.Resolve(def, name)
		if err != nil {
			return nil, err
		}
		out = append(out, resolution)
	}
	return out, nil
}

func (r *Resolver) checkStreamBlocks(label, field string, spec pages.FieldSpec) error {
	for _, name := range spec.Blocks {
		if r.blocks == nil {
			return fmt.Errorf("%w: %s.%s references block %q", blocks.ErrDefinitionUnknown, label, field, name)
		}
		if _, ok := r.blocks.Get(name); !ok {
			return fmt.Errorf("%w: %s.%s references block %q", blocks.ErrDefinitionUnknown, label, field, name)
		}
	}
	return nil
}

// Resolution is the resolved contract for one exposed field: where its
// value comes from and what type the schema declares for it.
type Resolution struct {
	Name   string
	Source Source

	computed pages.Computed
	attr     pageAttribute
	spec     pages.FieldSpec
	blocks   *blocks.Registry
	typed    bool
}

// FieldSpec returns the declared spec when the field is stored.
func (r Resolution) FieldSpec() (pages.FieldSpec, bool) {
	if r.Source != SourceStored {
		return pages.FieldSpec{}, false
	}
	return r.spec, true
}

// Required reports whether the field is always present in responses.
// Computed fields always produce a value; attributes follow the model
// column's nullability; stored fields follow their spec.
func (r Resolution) Required() bool {
	switch r.Source {
	case SourceComputed:
		return true
	case SourceAttribute:
		return r.attr.required
	default:
		return r.spec.Required
	}
}

// Value fetches the runtime value from a page instance. Stored values are
// returned raw; kind-aware rendering happens in the serializer.
func (r Resolution) Value(ctx context.Context, page *pages.Page) (any, error) {
	switch r.Source {
	case SourceComputed:
		if r.computed.Resolve == nil {
			return nil, pages.ErrComputedResolverRequired
		}
		return r.computed.Resolve(ctx, page)
	case SourceAttribute:
		return r.attr.value(page), nil
	default:
		value, _ := page.Field(r.Name)
		return value, nil
	}
}

// SchemaType yields the JSON schema fragment declared for the field. Type
// factories on computed fields run here and nowhere earlier, so definitions
// may reference schema owned by packages that finish wiring after
// registration. A computed field without a factory is unconstrained.
func (r Resolution) SchemaType() map[string]any {
	switch r.Source {
	case SourceComputed:
		if r.computed.Type == nil {
			return map[string]any{}
		}
		return cloneFragment(r.computed.Type())
	case SourceAttribute:
		return cloneFragment(r.attr.schema)
	default:
		if r.spec.Schema != nil {
			return cloneFragment(r.spec.Schema)
		}
		return specSchema(r.spec, r.blocks, r.typed)
	}
}
