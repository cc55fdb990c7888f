package schemagen

// Path item construction. Operations are GET only: the delivery API is
// read-only, so every path documents a single get with JSON responses and
// the shared error component for failures.

func pathItem(get map[string]any) map[string]any {
	return map[string]any{"get": get}
}

func operation(id, tag, summary string, response map[string]any, params []map[string]any) map[string]any {
	op := map[string]any{
		"operationId": id,
		"tags":        []any{tag},
		"summary":     summary,
		"responses": map[string]any{
			"200": response,
			"404": errJSON("not found"),
			"500": errJSON("internal error"),
		},
	}
	if len(params) > 0 {
		op["parameters"] = toAny(params)
	}
	return op
}

// findOperation documents the html path resolver: a match answers with a
// redirect to the canonical detail endpoint instead of a body.
func findOperation(id, tag, summary string, params []map[string]any) map[string]any {
	return map[string]any{
		"operationId": id,
		"tags":        []any{tag},
		"summary":     summary,
		"parameters":  toAny(params),
		"responses": map[string]any{
			"302": map[string]any{
				"description": "redirect to the matched page's detail endpoint",
				"headers": map[string]any{
					"Location": map[string]any{
						"schema": map[string]any{"type": "string"},
					},
				},
			},
			"400": errJSON("invalid query"),
			"404": errJSON("not found"),
		},
	}
}

func okJSON(schema map[string]any) map[string]any {
	return map[string]any{
		"description": "success",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": schema,
			},
		},
	}
}

func errJSON(description string) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": ref(ErrorComponent),
			},
		},
	}
}

func pathParam(name, typ, format string) map[string]any {
	schema := map[string]any{"type": typ}
	if format != "" {
		schema["format"] = format
	}
	return map[string]any{
		"name":     name,
		"in":       "path",
		"required": true,
		"schema":   schema,
	}
}

func queryParam(name string, required bool) map[string]any {
	return map[string]any{
		"name":     name,
		"in":       "query",
		"required": required,
		"schema":   map[string]any{"type": "string"},
	}
}

func toAny(params []map[string]any) []any {
	out := make([]any, len(params))
	for i, param := range params {
		out[i] = param
	}
	return out
}
