package testutil

import (
	"net/http"
	"time"

	id "minar/pkg/domain"
	"minar/pkg/requestcontext"
)

// WithActor stamps actor identity onto the request context, simulating what
// the auth middleware does for authenticated requests.
func WithActor(req *http.Request, actorID id.ActorID, role string) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actorID)
	ctx = requestcontext.WithActorRole(ctx, role)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock so temporal rules are deterministic
// in handler tests.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), at))
}
