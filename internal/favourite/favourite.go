package favourite

import (
	"context"
	"time"

	id "minar/pkg/domain"
)

// Favourite marks a masjid an actor wants quick access to. The pair is the
// identity; saving twice is a no-op.
type Favourite struct {
	ActorID   id.ActorID
	MasjidID  id.MasjidID
	CreatedAt time.Time
}

type Store interface {
	Add(ctx context.Context, fav *Favourite) error
	Remove(ctx context.Context, actorID id.ActorID, masjidID id.MasjidID) error
	ListByActor(ctx context.Context, actorID id.ActorID) ([]*Favourite, error)
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}
