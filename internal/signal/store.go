package signal

import (
	"context"
	"time"

	id "minar/pkg/domain"
)

// Store persists immutable signals. CountDistinctUserActors is the community
// aggregation the confidence processor runs: distinct non-nil actors with
// USER-sourced signals since the given cutoff.
type Store interface {
	Save(ctx context.Context, sig *Signal) error
	ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Signal, error)
	CountDistinctUserActors(ctx context.Context, masjidID id.MasjidID, since time.Time) (int, error)
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}

// Processor reacts to a freshly persisted signal. The confidence service
// implements it; the port lives here so signal does not depend on the
// confidence package.
type Processor interface {
	ProcessSignal(ctx context.Context, sig *Signal) error
}
