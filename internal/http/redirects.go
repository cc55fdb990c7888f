package http

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-api/internal/schemagen"
)

type redirectFindQuery struct {
	HTMLPath string
}

// Validate ensures the redirect matcher received a path.
func (q redirectFindQuery) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(q.HTMLPath) == "" {
		errs["html_path"] = validation.NewError("cmsapi.redirects.find.html_path_required", "html_path is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (api *API) registerRedirectRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "redirects")
	mux.HandleFunc("GET "+root, api.handleRedirectList)
	mux.HandleFunc("GET "+root+"/find", api.handleRedirectFind)
	mux.HandleFunc("GET "+root+"/{id}", api.handleRedirectGet)
}

func (api *API) handleRedirectList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.redirects == nil || api.serializer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.redirects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]any, 0, len(list))
	for _, record := range list {
		item, err := api.serializer.Redirect(r.Context(), record)
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
	if err := api.checkResponse(r.Context(), schemagen.RedirectListComponent, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) handleRedirectGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.redirects == nil || api.serializer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.redirects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := api.serializer.Redirect(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := api.checkResponse(r.Context(), schemagen.RedirectComponent, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) handleRedirectFind(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.redirects == nil || api.serializer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := redirectFindQuery{HTMLPath: r.URL.Query().Get("html_path")}
	if err := query.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	record, err := api.redirects.FindByPath(r.Context(), query.HTMLPath)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := api.serializer.Redirect(r.Context(), record)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := api.checkResponse(r.Context(), schemagen.RedirectComponent, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
