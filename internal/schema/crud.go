package schema

import (
	"context"
	"fmt"
	"strings"

	crud "github.com/goliatone/go-crud"
)

// CRUDRegistry publishes schema documents into the go-crud schema registry,
// making generated page-type schemas discoverable by crud tooling.
type CRUDRegistry struct {
	// Plural overrides the default pluralization (name + "s").
	Plural func(name string) string
}

func (r CRUDRegistry) Register(_ context.Context, name string, doc map[string]any) error {
	resource := strings.TrimSpace(name)
	if resource == "" {
		return fmt.Errorf("schema: resource name required")
	}
	plural := resource + "s"
	if r.Plural != nil {
		if value := strings.TrimSpace(r.Plural(resource)); value != "" {
			plural = value
		}
	}
	if ok := crud.RegisterSchemaDocument(resource, plural, doc); !ok {
		return fmt.Errorf("schema: crud registry rejected document %s", resource)
	}
	return nil
}
