// Package api holds what every HTTP handler shares: the access gate, JSON
// responses and the mapping from domain errors to status codes.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/auth"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction/csvimport"
	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

func init() {
	// Clients do arithmetic on amounts; send them as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// BadRequest answers 400 with a message that is safe to show the caller.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// Error maps err to a status code. Unknown errors are logged and reported
// as a generic 500 so internals never leak to the caller.
func Error(w http.ResponseWriter, err error) {
	var vErr *validate.Error

	switch {
	case errors.As(err, &vErr):
		msg := vErr.Error()
		if errors.Is(err, csvimport.ErrInvalidFile) {
			msg = err.Error()
		}

		JSON(w, http.StatusBadRequest, errorResponse{Error: msg, Field: vErr.Field})
	case errors.Is(err, csvimport.ErrInvalidFile):
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, stock.ErrItemNotFound):
		JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Decode reads a JSON body into v. It writes the error response itself and
// reports whether the handler should continue.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			JSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return false
		}

		BadRequest(w, "invalid JSON body: "+err.Error())

		return false
	}

	return true
}
