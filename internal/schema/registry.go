package schema

import "context"

// Registry receives generated schema documents, typically the go-crud
// schema registry the host mounts its admin tooling on.
type Registry interface {
	Register(ctx context.Context, name string, doc map[string]any) error
}

// RegisterProjections publishes each page-type projection to the registry.
// Projections without a document are skipped; registration errors abort the
// run so a partial publish is never mistaken for success.
func RegisterProjections(ctx context.Context, registry Registry, projections []*Projection) error {
	if registry == nil || len(projections) == 0 {
		return nil
	}
	for _, projection := range projections {
		if projection == nil || projection.Document == nil || projection.Name == "" {
			continue
		}
		if err := registry.Register(ctx, projection.Name, projection.Document.AsMap()); err != nil {
			return err
		}
	}
	return nil
}
