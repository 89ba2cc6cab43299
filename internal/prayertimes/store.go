package prayertimes

import (
	"context"

	id "minar/pkg/domain"
)

// Store persists prayer schedules keyed by (masjid, date). Upsert replaces
// any existing schedule for the key.
type Store interface {
	Upsert(ctx context.Context, schedule *Schedule) error
	Get(ctx context.Context, masjidID id.MasjidID, date Date) (*Schedule, error)
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}
