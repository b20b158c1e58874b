// Package web carries the HTTP plumbing shared by every service: the
// JSON response envelope, the error-to-status mapping and the server
// run loop. Success bodies are `{"data": ...}`, failures `{"error": ...}`,
// and nothing else is guaranteed on the wire.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"finhub/internal/core"
	"finhub/internal/log"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// Respond writes a success envelope with the given status.
func Respond(w http.ResponseWriter, status int, data any) {
	write(w, status, dataEnvelope{Data: data})
}

// Fail writes an error envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, errorEnvelope{Error: message})
}

// RespondError maps a domain error onto the wire taxonomy. Validation
// detail is surfaced to the caller; store and transport failures are
// logged and normalized so raw error text never leaves the service.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, core.ErrNotFound):
		Fail(w, http.StatusNotFound, "Not found")
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Internal error",
			log.FieldError, err, "path", r.URL.Path)
		Fail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// DecodeJSON parses a request body into dst, mapping malformed JSON to
// a validation error.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, core.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: malformed request body", core.ErrValidation)
	}
	return nil
}
