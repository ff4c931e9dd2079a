// Package httputil centralizes JSON response writing and request decoding
// so handlers stay thin and error envelopes stay consistent.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorEnvelope is the JSON error body. Kind is present only for taxonomy
// failures so clients can branch without parsing messages.
type errorEnvelope struct {
	Error            string `json:"error"`
	Kind             string `json:"kind,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteError maps a domain error to its HTTP status and JSON envelope.
// Internal errors omit the description so infrastructure details never
// reach clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.HTTPStatus(code)

	body := errorEnvelope{Error: string(code), Kind: string(dErrors.KindOf(err))}
	if code != dErrors.CodeInternal {
		body.ErrorDescription = dErrors.MessageOf(err)
	}
	WriteJSON(w, status, body)
}

// Decode unmarshals the request body into T, reporting a 400 on malformed
// input. The bool is false when a response has already been written.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "failed to decode request body", "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return v, false
	}
	return v, true
}
