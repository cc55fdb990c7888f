package blocks

import "fmt"

// Kind enumerates the value shapes a block definition may take.
type Kind string

const (
	KindText     Kind = "text"
	KindRichText Kind = "richtext"
	KindBoolean  Kind = "boolean"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindChoice   Kind = "choice"
	KindStruct   Kind = "struct"
	KindStream   Kind = "stream"
)

// Valid reports whether the kind is one of the declared enumerations.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindRichText, KindBoolean, KindInteger, KindFloat,
		KindChoice, KindStruct, KindStream:
		return true
	default:
		return false
	}
}

// SerializeFunc transforms a stored block value before it is written to a
// response. Declared schemas cannot see inside custom serializers, so
// structural typing for such blocks is best effort.
type SerializeFunc func(value any) (any, error)

// Definition describes one block type usable inside stream fields.
type Definition struct {
	Name string
	Kind Kind
	// Choices constrains choice blocks to an enumerated value set.
	Choices []string
	// Children declares the members of struct and stream kinds. Referenced
	// definitions resolve by name at schema-build time, so blocks may
	// register in any order.
	Children []Child
	// Serialize optionally overrides the stored value on output.
	Serialize SerializeFunc
}

// Child names a member block inside a struct or stream definition.
type Child struct {
	Name  string
	Block string
}

// Validate checks structural consistency before registration. Child block
// references are deliberately not resolved here; they are checked when
// schemas are built.
func (d *Definition) Validate() error {
	if d == nil || d.Name == "" {
		return ErrDefinitionNameRequired
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: %s kind %q", ErrKindInvalid, d.Name, d.Kind)
	}
	if d.Kind == KindChoice && len(d.Choices) == 0 {
		return fmt.Errorf("%w: %s", ErrChoicesRequired, d.Name)
	}
	if d.Kind == KindStruct || d.Kind == KindStream {
		if len(d.Children) == 0 {
			return fmt.Errorf("%w: %s", ErrChildrenRequired, d.Name)
		}
		seen := make(map[string]struct{}, len(d.Children))
		for _, child := range d.Children {
			if child.Name == "" || child.Block == "" {
				return fmt.Errorf("%w: %s", ErrChildInvalid, d.Name)
			}
			if _, dup := seen[child.Name]; dup {
				return fmt.Errorf("%w: %s.%s", ErrChildInvalid, d.Name, child.Name)
			}
			seen[child.Name] = struct{}{}
		}
	}
	return nil
}

// BlockValue is one element of a stream field payload.
type BlockValue struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
	ID    string `json:"id,omitempty"`
}

// StreamValue is the stored payload of a stream field.
type StreamValue []BlockValue

// ParseStream coerces a decoded JSON payload into a StreamValue. Stored
// stream data arrives as []any of maps after jsonb decoding.
func ParseStream(raw any) (StreamValue, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case StreamValue:
		return value, nil
	case []BlockValue:
		return StreamValue(value), nil
	case []any:
		out := make(StreamValue, 0, len(value))
		for i, item := range value {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: element %d", ErrStreamMalformed, i)
			}
			blockType, _ := entry["type"].(string)
			if blockType == "" {
				return nil, fmt.Errorf("%w: element %d missing type", ErrStreamMalformed, i)
			}
			id, _ := entry["id"].(string)
			out = append(out, BlockValue{
				Type:  blockType,
				Value: entry["value"],
				ID:    id,
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unexpected payload %T", ErrStreamMalformed, raw)
	}
}
