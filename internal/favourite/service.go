package favourite

import (
	"context"

	"minar/internal/masjid"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/requestcontext"
)

// Directory checks that a masjid exists before it can be favourited.
type Directory interface {
	Get(ctx context.Context, masjidID id.MasjidID) (*masjid.Masjid, error)
}

type Service struct {
	store   Store
	masjids Directory
}

func NewService(store Store, masjids Directory) *Service {
	return &Service{store: store, masjids: masjids}
}

// Add saves the masjid to the actor's list. Adding an existing favourite is
// a no-op, not a conflict.
func (s *Service) Add(ctx context.Context, actorID id.ActorID, masjidID id.MasjidID) error {
	if _, err := s.masjids.Get(ctx, masjidID); err != nil {
		return err
	}
	fav := &Favourite{
		ActorID:   actorID,
		MasjidID:  masjidID,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Add(ctx, fav); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save favourite")
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, actorID id.ActorID, masjidID id.MasjidID) error {
	if err := s.store.Remove(ctx, actorID, masjidID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove favourite")
	}
	return nil
}

func (s *Service) ListByActor(ctx context.Context, actorID id.ActorID) ([]*Favourite, error) {
	favs, err := s.store.ListByActor(ctx, actorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list favourites")
	}
	return favs, nil
}

// PurgeMasjid removes the masjid from every actor's list on deletion.
func (s *Service) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	return s.store.PurgeMasjid(ctx, masjidID)
}
