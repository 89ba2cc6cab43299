package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"minar/internal/jwttoken"
	id "minar/pkg/domain"
	"minar/pkg/requestcontext"
)

// TokenValidator validates bearer tokens into claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// Toucher records when an authenticated actor was last active. The
// admin-inactivity decay sweep reads these timestamps.
type Toucher interface {
	Touch(ctx context.Context, actorID id.ActorID, at time.Time) error
}

// RequireAuth validates the Authorization bearer token, loads actor identity
// into the request context, and stamps the actor's last-active time.
func RequireAuth(validator TokenValidator, lastSeen Toucher, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			actorID, err := id.ParseActorID(claims.ActorID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed actor id in token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid token claims")
				return
			}

			ctx = requestcontext.WithActorID(ctx, actorID)
			ctx = requestcontext.WithActorRole(ctx, claims.Role)

			// Best effort: a failed stamp must not fail the request, but the
			// inactivity sweep depends on these writes, so it is logged.
			if lastSeen != nil {
				if err := lastSeen.Touch(ctx, actorID, requestcontext.Now(ctx)); err != nil {
					logger.WarnContext(ctx, "failed to stamp actor last-active time",
						"error", err,
						"actor_id", actorID,
						"request_id", requestID,
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to actors whose token carries one of the given
// roles. Must be mounted after RequireAuth.
func RequireRole(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := requestcontext.ActorRole(ctx)
			if !allowed[role] {
				logger.WarnContext(ctx, "forbidden - insufficient role",
					"role", role,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Insufficient role for this operation"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
