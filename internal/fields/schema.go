package fields

import (
	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/pages"
)

// Component names referenced by derived schema fragments. The schema
// generator registers components under these names.
const (
	ImageSchemaName       = "image"
	DocumentSchemaName    = "document"
	StreamFieldSchemaName = "stream_field"
)

func componentRef(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func nullableRef(name string) map[string]any {
	return map[string]any{
		"anyOf": []any{
			componentRef(name),
			map[string]any{"type": "null"},
		},
	}
}

// specSchema derives a JSON schema fragment from a declared field spec.
func specSchema(spec pages.FieldSpec, registry *blocks.Registry, typed bool) map[string]any {
	switch spec.Kind {
	case pages.KindText, pages.KindRichText:
		return map[string]any{"type": "string"}
	case pages.KindInteger:
		return map[string]any{"type": "integer"}
	case pages.KindFloat:
		return map[string]any{"type": "number"}
	case pages.KindBoolean:
		return map[string]any{"type": "boolean"}
	case pages.KindDateTime:
		return map[string]any{"type": "string", "format": "date-time"}
	case pages.KindChoice:
		return map[string]any{"type": "string", "enum": toAnySlice(spec.Choices)}
	case pages.KindImage:
		return nullableRef(ImageSchemaName)
	case pages.KindDocument:
		return nullableRef(DocumentSchemaName)
	case pages.KindReference:
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "format": "uuid"},
		}
	case pages.KindStream:
		return streamSchema(spec, registry, typed)
	default:
		return map[string]any{}
	}
}

// streamSchema declares a stream field. Structural typing is best effort:
// child block references that do not resolve fall back to unconstrained
// values, and custom per-block serializers can disagree with the inferred
// shape.
func streamSchema(spec pages.FieldSpec, registry *blocks.Registry, typed bool) map[string]any {
	if !typed || registry == nil || len(spec.Blocks) == 0 {
		return componentRef(StreamFieldSchemaName)
	}
	variants := make([]any, 0, len(spec.Blocks))
	seen := map[string]bool{}
	for _, name := range spec.Blocks {
		def, ok := registry.Get(name)
		if !ok {
			continue
		}
		variants = append(variants, blockEnvelope(def, registry, seen))
	}
	if len(variants) == 0 {
		return componentRef(StreamFieldSchemaName)
	}
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"oneOf": variants},
	}
}

// blockEnvelope types one stream element: the stored type/value/id triple
// with the value constrained by the block definition.
func blockEnvelope(def *blocks.Definition, registry *blocks.Registry, seen map[string]bool) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"type", "value"},
		"properties": map[string]any{
			"type":  map[string]any{"const": def.Name},
			"value": blockValueSchema(def, registry, seen),
			"id":    map[string]any{"type": "string"},
		},
	}
}

func blockValueSchema(def *blocks.Definition, registry *blocks.Registry, seen map[string]bool) map[string]any {
	if def == nil || seen[def.Name] {
		return map[string]any{}
	}
	seen[def.Name] = true
	defer delete(seen, def.Name)

	switch def.Kind {
	case blocks.KindText, blocks.KindRichText:
		return map[string]any{"type": "string"}
	case blocks.KindBoolean:
		return map[string]any{"type": "boolean"}
	case blocks.KindInteger:
		return map[string]any{"type": "integer"}
	case blocks.KindFloat:
		return map[string]any{"type": "number"}
	case blocks.KindChoice:
		return map[string]any{"type": "string", "enum": toAnySlice(def.Choices)}
	case blocks.KindStruct:
		properties := make(map[string]any, len(def.Children))
		required := make([]string, 0, len(def.Children))
		for _, child := range def.Children {
			childDef, ok := registry.Get(child.Block)
			if !ok {
				properties[child.Name] = map[string]any{}
				continue
			}
			properties[child.Name] = blockValueSchema(childDef, registry, seen)
			required = append(required, child.Name)
		}
		schema := map[string]any{
			"type":       "object",
			"properties": properties,
		}
		if len(required) > 0 {
			schema["required"] = required
		}
		return schema
	case blocks.KindStream:
		variants := make([]any, 0, len(def.Children))
		for _, child := range def.Children {
			childDef, ok := registry.Get(child.Block)
			if !ok {
				continue
			}
			variants = append(variants, blockEnvelope(childDef, registry, seen))
		}
		if len(variants) == 0 {
			return map[string]any{"type": "array"}
		}
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"oneOf": variants},
		}
	default:
		return map[string]any{}
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}

func cloneFragment(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
