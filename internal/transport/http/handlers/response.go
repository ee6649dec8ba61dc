package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vedran77/chirp/internal/service"
)

const msgInternal = "Something went wrong"

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeOK writes {"result": true} merged with fields.
func writeOK(w http.ResponseWriter, status int, fields map[string]any) {
	body := map[string]any{"result": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"result": false,
		"error":  message,
	})
}

// decodeBody reads a JSON body into dst. An empty body decodes as the zero
// value so validation reports the missing fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid request body")
	return false
}

// writeServiceError maps service sentinels to HTTP statuses. Anything else
// is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCreds), errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotTweetAuthor):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTweetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// NotFound answers unmatched routes with the standard error body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
