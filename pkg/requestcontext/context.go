// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them without importing net/http.
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithActorID(ctx, actorID)
package requestcontext

import (
	"context"
	"time"

	id "minar/pkg/domain"
)

type (
	actorIDKey     struct{}
	actorRoleKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// WithActorID stores the authenticated actor in context.
func WithActorID(ctx context.Context, actorID id.ActorID) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actorID)
}

// ActorID returns the authenticated actor, or the zero ID when the request is
// anonymous.
func ActorID(ctx context.Context) id.ActorID {
	actorID, ok := ctx.Value(actorIDKey{}).(id.ActorID)
	if !ok {
		return id.ActorID{}
	}
	return actorID
}

// WithActorRole stores the authenticated actor's role in context.
func WithActorRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, actorRoleKey{}, role)
}

// ActorRole returns the authenticated actor's role, or "" when anonymous.
func ActorRole(ctx context.Context) string {
	role, ok := ctx.Value(actorRoleKey{}).(string)
	if !ok {
		return ""
	}
	return role
}

// WithRequestID stores the request correlation ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return requestID
}

// WithTime pins "now" for the duration of a request. Services and stores that
// evaluate temporal rules (decay gates, signal windows, expiry) read time via
// Now so tests can inject a fixed clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	t, ok := ctx.Value(requestTimeKey{}).(time.Time)
	if !ok {
		return time.Now()
	}
	return t
}
