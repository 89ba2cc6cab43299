package middleware

import (
	"net/http"
	"time"

	"minar/pkg/requestcontext"
)

// RequestTime pins "now" once per request so every temporal rule evaluated
// downstream (decay gates, signal windows, badge expiry) sees the same clock.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
