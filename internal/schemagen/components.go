package schemagen

// baseComponents declares the schemas shared by every generated document.
// Shapes mirror the serializer's output exactly: required lists only name
// keys the serializer always emits, everything conditional stays optional.
func baseComponents() map[string]map[string]any {
	return map[string]map[string]any{
		PageMetaComponent: {
			"type":     "object",
			"required": []string{"type", "detail_url", "html_url", "slug", "locale"},
			"properties": map[string]any{
				"type":               map[string]any{"type": "string"},
				"detail_url":         map[string]any{"type": "string"},
				"html_url":           map[string]any{"type": "string"},
				"slug":               map[string]any{"type": "string"},
				"locale":             map[string]any{"type": "string"},
				"first_published_at": map[string]any{"type": "string", "format": "date-time"},
				"last_published_at":  map[string]any{"type": "string", "format": "date-time"},
			},
		},
		PageParentComponent: {
			"type":     "object",
			"required": []string{"id", "title", "meta"},
			"properties": map[string]any{
				"id":    map[string]any{"type": "string", "format": "uuid"},
				"title": map[string]any{"type": "string"},
				"meta": map[string]any{
					"type":     "object",
					"required": []string{"type", "detail_url", "html_url"},
					"properties": map[string]any{
						"type":       map[string]any{"type": "string"},
						"detail_url": map[string]any{"type": "string"},
						"html_url":   map[string]any{"type": "string"},
					},
				},
			},
		},
		PageDetailMetaComponent: {
			"allOf": []any{
				ref(PageMetaComponent),
				map[string]any{
					"type":     "object",
					"required": []string{"show_in_menus", "seo_title", "search_description", "parent"},
					"properties": map[string]any{
						"show_in_menus":      map[string]any{"type": "boolean"},
						"seo_title":          map[string]any{"type": "string"},
						"search_description": map[string]any{"type": "string"},
						"parent":             nullable(ref(PageParentComponent)),
					},
				},
			},
		},
		PageComponent: {
			"type":     "object",
			"required": []string{"id", "title", "content_type", "meta"},
			"properties": map[string]any{
				"id":           map[string]any{"type": "string", "format": "uuid"},
				"title":        map[string]any{"type": "string"},
				"content_type": map[string]any{"type": "string"},
				"meta":         ref(PageMetaComponent),
			},
		},
		StreamBlockComponent: {
			"type":     "object",
			"required": []string{"type", "value"},
			"properties": map[string]any{
				"type":  map[string]any{"type": "string"},
				"value": map[string]any{},
				"id":    map[string]any{"type": "string"},
			},
		},
		StreamFieldComponent: {
			"type":  "array",
			"items": ref(StreamBlockComponent),
		},
		ImageComponent: {
			"type":     "object",
			"required": []string{"id", "title", "width", "height", "meta"},
			"properties": map[string]any{
				"id":     map[string]any{"type": "string", "format": "uuid"},
				"title":  map[string]any{"type": "string"},
				"width":  map[string]any{"type": "integer"},
				"height": map[string]any{"type": "integer"},
				"meta": map[string]any{
					"type":     "object",
					"required": []string{"type", "download_url"},
					"properties": map[string]any{
						"type":         map[string]any{"const": "cms.image"},
						"download_url": map[string]any{"type": "string"},
					},
				},
			},
		},
		DocumentComponent: {
			"type":     "object",
			"required": []string{"id", "title", "meta"},
			"properties": map[string]any{
				"id":    map[string]any{"type": "string", "format": "uuid"},
				"title": map[string]any{"type": "string"},
				"meta": map[string]any{
					"type":     "object",
					"required": []string{"type", "download_url"},
					"properties": map[string]any{
						"type":         map[string]any{"const": "cms.document"},
						"download_url": map[string]any{"type": "string"},
					},
				},
			},
		},
		RedirectComponent: {
			"type":     "object",
			"required": []string{"id", "old_path", "location", "is_permanent"},
			"properties": map[string]any{
				"id":           map[string]any{"type": "string", "format": "uuid"},
				"old_path":     map[string]any{"type": "string"},
				"location":     nullable(map[string]any{"type": "string"}),
				"is_permanent": map[string]any{"type": "boolean"},
			},
		},
		ErrorComponent: {
			"type":     "object",
			"required": []string{"error"},
			"properties": map[string]any{
				"error":   map[string]any{"type": "string"},
				"message": map[string]any{"type": "string"},
				"issues": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"message"},
						"properties": map[string]any{
							"location": map[string]any{"type": "string"},
							"message":  map[string]any{"type": "string"},
						},
					},
				},
			},
		},
		PageListComponent:     listEnvelope(ref(PageComponent)),
		RedirectListComponent: listEnvelope(ref(RedirectComponent)),
	}
}

func listEnvelope(item map[string]any) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"meta", "items"},
		"properties": map[string]any{
			"meta": map[string]any{
				"type":     "object",
				"required": []string{"total_count"},
				"properties": map[string]any{
					"total_count": map[string]any{"type": "integer", "minimum": 0},
				},
			},
			"items": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
	}
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func nullable(schema map[string]any) map[string]any {
	return map[string]any{
		"anyOf": []any{
			schema,
			map[string]any{"type": "null"},
		},
	}
}
