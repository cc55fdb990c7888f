package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-cms-api/blocks"
	"github.com/goliatone/go-cms-api/internal/fields"
	"github.com/goliatone/go-cms-api/internal/validation"
	"github.com/goliatone/go-cms-api/media"
	"github.com/goliatone/go-cms-api/pages"
	"github.com/goliatone/go-cms-api/redirects"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, pages.ErrPageNotFound) ||
		errors.Is(err, redirects.ErrRedirectNotFound) ||
		errors.Is(err, media.ErrImageNotFound) ||
		errors.Is(err, media.ErrDocumentNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, pages.ErrPathRequired) || errors.Is(err, redirects.ErrPathRequired) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	// Responses that fail their own published schema are server defects,
	// never client errors.
	var payloadErr *validation.PayloadValidationError
	if errors.As(err, &payloadErr) {
		return http.StatusInternalServerError, errorResponse{
			Error:   "response_validation",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, validation.ErrSchemaInvalid) ||
		errors.Is(err, fields.ErrFieldUnresolved) ||
		errors.Is(err, blocks.ErrDefinitionUnknown) ||
		errors.Is(err, pages.ErrDefinitionUnknown) {
		return http.StatusInternalServerError, errorResponse{
			Error:   "schema_error",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}
