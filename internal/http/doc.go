// Package http provides the read-only delivery API adapters.
//
// Routes mount under the configured base path (default /api/v2):
//   - Pages: /pages, /pages/{id}, /pages/find
//   - Redirects: /redirects, /redirects/{id}, /redirects/find
//   - Schema: /openapi.json, /docs
//
// /pages/find answers with a 302 to the matched page's detail endpoint;
// /redirects/find answers with the matched redirect record. Responses are
// optionally validated against the generated component schemas before they
// are written. Host applications register the handlers on their own mux.
package http
