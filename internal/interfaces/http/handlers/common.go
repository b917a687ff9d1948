// Package handlers contains the HTTP endpoint implementations: label
// analysis, product lookup, and health probes. Handlers validate input,
// delegate to application services, and render results through the shared
// writeJSON/writeAppError helpers so every endpoint speaks the same error
// dialect.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/NutriLens/pkg/errors"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an ErrorResponse with an explicit status, bypassing the
// AppError mapping. For spots where no AppError exists yet (router fallbacks).
func writeError(w http.ResponseWriter, statusCode int, code errors.ErrorCode, message string) {
	writeJSON(w, statusCode, ErrorResponse{Code: code.String(), Message: message})
}

// NotFound is the JSON fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, errors.ErrCodeNotFound, "route not found")
}

// MethodNotAllowed is the JSON fallback for matched paths with unsupported
// methods.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, errors.ErrCodeBadRequest, "method not allowed")
}

// writeAppError renders err using the status mapping in pkg/errors. Plain
// errors and 500-class codes get a generic body; the handler is expected to
// have logged the original. Detail is echoed only on client errors, where it
// names the offending field or barcode rather than anything internal.
func writeAppError(w http.ResponseWriter, err error) {
	ae, ok := errors.AsAppError(err)
	if !ok {
		writeError(w, http.StatusInternalServerError,
			errors.ErrCodeInternal, errors.DefaultMessageForCode(errors.ErrCodeInternal))
		return
	}

	status := errors.HTTPStatusForCode(ae.Code)
	resp := ErrorResponse{
		Code:    ae.Code.String(),
		Message: ae.Message,
		Detail:  ae.Detail,
	}
	if resp.Message == "" {
		resp.Message = errors.DefaultMessageForCode(ae.Code)
	}
	if status >= http.StatusInternalServerError {
		resp.Message = errors.DefaultMessageForCode(ae.Code)
		resp.Detail = ""
	}
	writeJSON(w, status, resp)
}
