package masjid

import (
	"context"

	id "minar/pkg/domain"
)

// Store implementations return sentinel errors; the service translates them
// into coded domain errors.
type Store interface {
	Create(ctx context.Context, m *Masjid) error
	FindByID(ctx context.Context, masjidID id.MasjidID) (*Masjid, error)
	Update(ctx context.Context, m *Masjid) error
	Delete(ctx context.Context, masjidID id.MasjidID) error
	List(ctx context.Context, filter Filter) ([]*Masjid, error)
}
