package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"minar/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation ID, honoring one supplied by
// a trusted proxy, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
