package http

import (
	"fmt"
	"html"
	"net/http"
)

// docsTemplate is the interactive viewer shell: a static page that loads the
// generated OpenAPI document from the sibling endpoint.
const docsTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
</head>
<body style="height:100vh">
  <elements-api apiDescriptionUrl="%s" router="hash" layout="sidebar"></elements-api>
</body>
</html>
`

func (api *API) registerSchemaRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(base, "openapi.json"), api.handleOpenAPIDocument)
	if api.docs {
		mux.HandleFunc("GET "+joinPath(base, "docs"), api.handleDocsPage)
	}
}

func (api *API) handleOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	result, err := api.generator.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Document.AsMap())
}

func (api *API) handleDocsPage(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	result, err := api.generator.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, docsTemplate, html.EscapeString(result.Document.Info.Title), joinPath(api.basePath, "openapi.json"))
}
