package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cms-api/internal/openapi"
	"github.com/goliatone/go-slug"
)

// SharedSchema captures a named component schema bundled into a projection.
type SharedSchema struct {
	Name   string
	Schema map[string]any
}

// Projection contains an OpenAPI document projection for one page type.
type Projection struct {
	Name     string
	Document *openapi.Document
}

// ProjectDefinition builds a per-page-type OpenAPI document: the detail
// response schema under the type's component name plus any shared
// components it references.
func ProjectDefinition(label, title, version string, detail map[string]any, shared []SharedSchema) (*Projection, error) {
	labelValue := strings.TrimSpace(label)
	if labelValue == "" {
		return nil, fmt.Errorf("schema: page type label required for projection")
	}
	if detail == nil {
		return nil, fmt.Errorf("schema: detail schema required for projection %s", labelValue)
	}
	titleValue := strings.TrimSpace(title)
	if titleValue == "" {
		titleValue = labelValue
	}
	doc := openapi.NewDocument(titleValue, strings.TrimPrefix(version, "v"))
	doc.AddSchema(ComponentName(labelValue), cloneMap(detail))
	for _, component := range shared {
		if component.Schema == nil || strings.TrimSpace(component.Name) == "" {
			continue
		}
		doc.AddSchema(ComponentName(component.Name), cloneMap(component.Schema))
	}
	doc.SetExtension("x-cms", map[string]any{
		"content_type": labelValue,
	})
	return &Projection{
		Name:     labelValue,
		Document: doc,
	}, nil
}

// ComponentName normalizes a label into an OpenAPI component identifier.
func ComponentName(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		normalized = value
	}
	return strings.ReplaceAll(normalized, "-", "_")
}
