// Package response writes JSON bodies for handlers and middleware that work
// on a bare http.ResponseWriter.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 with v as the body.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created sends a 201 with v as the body.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Error sends {message} with status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

// ErrorWithCause sends {message, error} with status.
func ErrorWithCause(w http.ResponseWriter, status int, message, cause string) {
	JSON(w, status, ErrorBody{Message: message, Error: cause})
}

// ValidationError sends a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Message: "Validation failed", Errors: errs})
}

// Paginated sends {total, page, pages, <key>: items}.
func Paginated(w http.ResponseWriter, key string, items interface{}, p orm.Pagination) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"total": p.Total,
		"page":  p.Page,
		"pages": p.Pages,
		key:     items,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}
