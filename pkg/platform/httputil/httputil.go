// Package httputil centralizes JSON encoding and domain error translation for
// HTTP handlers so every endpoint returns the same error envelope.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "minar/pkg/domain-errors"
)

// errorEnvelope is the uniform error body: {"error": code} plus an optional
// human-readable description.
type errorEnvelope struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded domain error into an HTTP error response.
// Internal errors are redacted: the code is returned but not the message,
// which may reference infrastructure details.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := errorEnvelope{Error: string(code)}
	if code != dErrors.CodeInternal {
		body.ErrorDescription = dErrors.MessageOf(err)
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

// Validatable lets request types carry their own validation. DecodeAndPrepare
// runs it after decoding so handlers receive only well-formed requests.
type Validatable interface {
	Validate() error
}

// DecodeAndPrepare decodes the request body into T, validates it when T
// implements Validatable, and writes the error response itself on failure.
// The boolean result tells the handler whether to proceed.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "malformed request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed JSON body"))
		return req, false
	}
	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			WriteError(w, err)
			return req, false
		}
	}
	return req, true
}
