package openapi

// Document represents a minimal OpenAPI document. Schemas follow the
// JSON Schema 2020-12 dialect, so component fragments double as response
// validation schemas.
type Document struct {
	OpenAPI    string         `json:"openapi"`
	Info       Info           `json:"info"`
	Servers    []Server       `json:"servers,omitempty"`
	Paths      map[string]any `json:"paths,omitempty"`
	Components Components     `json:"components,omitempty"`
	Extensions map[string]any `json:"-"`
}

// Info captures OpenAPI metadata.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Server names a base URL the documented operations are served under.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Components aggregates schema components.
type Components struct {
	Schemas map[string]any `json:"schemas,omitempty"`
}

// NewDocument constructs a minimal OpenAPI document.
func NewDocument(title, version string) *Document {
	return &Document{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:   title,
			Version: version,
		},
		Paths:      map[string]any{},
		Components: Components{Schemas: map[string]any{}},
		Extensions: map[string]any{},
	}
}

// AddSchema registers a component schema.
func (d *Document) AddSchema(name string, schema map[string]any) {
	if d == nil || name == "" || schema == nil {
		return
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = map[string]any{}
	}
	d.Components.Schemas[name] = schema
}

// AddPath registers a path item keyed by its template, e.g. "/pages/{id}".
func (d *Document) AddPath(path string, item map[string]any) {
	if d == nil || path == "" || item == nil {
		return
	}
	if d.Paths == nil {
		d.Paths = map[string]any{}
	}
	d.Paths[path] = item
}

// AddServer appends a server entry.
func (d *Document) AddServer(url, description string) {
	if d == nil || url == "" {
		return
	}
	d.Servers = append(d.Servers, Server{URL: url, Description: description})
}

// SetExtension sets a vendor extension on the document.
func (d *Document) SetExtension(key string, value any) {
	if d == nil || key == "" {
		return
	}
	if d.Extensions == nil {
		d.Extensions = map[string]any{}
	}
	d.Extensions[key] = value
}

// Schema returns a registered component schema by name.
func (d *Document) Schema(name string) (map[string]any, bool) {
	if d == nil || d.Components.Schemas == nil {
		return nil, false
	}
	schema, ok := d.Components.Schemas[name].(map[string]any)
	return schema, ok
}

// AsMap returns the document as a map for registry consumers.
func (d *Document) AsMap() map[string]any {
	if d == nil {
		return nil
	}
	out := map[string]any{
		"openapi": d.OpenAPI,
		"info": map[string]any{
			"title":   d.Info.Title,
			"version": d.Info.Version,
		},
	}
	if len(d.Servers) > 0 {
		servers := make([]any, 0, len(d.Servers))
		for _, server := range d.Servers {
			entry := map[string]any{"url": server.URL}
			if server.Description != "" {
				entry["description"] = server.Description
			}
			servers = append(servers, entry)
		}
		out["servers"] = servers
	}
	if len(d.Paths) > 0 {
		out["paths"] = d.Paths
	} else {
		out["paths"] = map[string]any{}
	}
	if len(d.Components.Schemas) > 0 {
		out["components"] = map[string]any{
			"schemas": d.Components.Schemas,
		}
	}
	for key, value := range d.Extensions {
		out[key] = value
	}
	return out
}
