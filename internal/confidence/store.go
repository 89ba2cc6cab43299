package confidence

import (
	"context"
	"time"

	id "minar/pkg/domain"
)

// Store persists confidence records, one per masjid. Get returns
// sentinel.ErrNotFound for masjids that were never confirmed; Save upserts.
type Store interface {
	Get(ctx context.Context, masjidID id.MasjidID) (*Record, error)
	Save(ctx context.Context, record *Record) error
	// ListOverdue returns records with level > 0 and decayDate <= now, the
	// candidate set for the scheduled decay sweep.
	ListOverdue(ctx context.Context, now time.Time) ([]*Record, error)
	// ListByLevel returns records at exactly the given level.
	ListByLevel(ctx context.Context, level Level) ([]*Record, error)
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}

// Tx serializes a read-modify-write sequence. The postgres runner wraps it in
// a database transaction; the in-memory runner holds a single mutex so two
// concurrent signals cannot both observe a stale level.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// mutexTx is the in-memory Tx used by tests and the default wiring.
type mutexTx struct {
	mu chan struct{}
}

func NewMutexTx() Tx {
	t := &mutexTx{mu: make(chan struct{}, 1)}
	return t
}

func (t *mutexTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case t.mu <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-t.mu }()
	return fn(ctx)
}
