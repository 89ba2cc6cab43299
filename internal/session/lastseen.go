package session

import (
	"context"
	"time"

	id "minar/pkg/domain"
)

// LastSeenStore tracks the most recent authenticated activity per actor. The
// auth middleware writes it on every request; the admin-inactivity decay
// sweep reads it to find masjids whose admins have gone quiet.
type LastSeenStore interface {
	Touch(ctx context.Context, actorID id.ActorID, at time.Time) error
	Last(ctx context.Context, actorID id.ActorID) (time.Time, bool, error)
}
