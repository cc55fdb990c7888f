package http

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-api/internal/schemagen"
	"github.com/goliatone/go-cms-api/pages"
)

type pageFindQuery struct {
	HTMLPath string
	Locale   string
}

// Validate ensures the html path resolver received a path to match.
func (q pageFindQuery) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(q.HTMLPath) == "" {
		errs["html_path"] = validation.NewError("cmsapi.pages.find.html_path_required", "html_path is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (api *API) registerPageRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("GET "+root+"/find", api.handlePageFind)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePageGet)
}

func (api *API) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil || api.serializer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	opts := pages.ListOptions{
		Type:   strings.TrimSpace(r.URL.Query().Get("type")),
		Locale: strings.TrimSpace(r.URL.Query().Get("locale")),
	}
	list, err := api.pages.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]any, 0, len(list))
	for _, page := range list {
		item, err := api.serializer.PageSummary(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}
		items = append(items, item)
	}
	payload := map[string]any{
		"meta":  map[string]any{"total_count": len(items)},
		"items": items,
	}
	if err := api.checkResponse(r.Context(), schemagen.PageListComponent, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil || api.serializer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.pages.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := api.serializer.PageDetail(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	component, err := api.detailComponent(r.Context(), record.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := api.checkResponse(r.Context(), component, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) handlePageFind(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := pageFindQuery{
		HTMLPath: r.URL.Query().Get("html_path"),
		Locale:   strings.TrimSpace(r.URL.Query().Get("locale")),
	}
	if err := query.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	record, err := api.pages.FindByPath(r.Context(), query.HTMLPath, query.Locale)
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, api.urls.PageDetailURL(record.ID), http.StatusFound)
}
