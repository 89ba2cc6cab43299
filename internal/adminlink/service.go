package adminlink

import (
	"context"
	"errors"
	"log/slog"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/platform/sentinel"
	"minar/pkg/requestcontext"
)

// Service manages actor-masjid management links.
type Service struct {
	store  Store
	trail  *audit.Trail
	logger *slog.Logger
}

func NewService(store Store, trail *audit.Trail, logger *slog.Logger) *Service {
	return &Service{store: store, trail: trail, logger: logger}
}

func (s *Service) Create(ctx context.Context, actorID id.ActorID, masjidID id.MasjidID) (*Link, error) {
	link, err := NewLink(id.NewAdminLinkID(), actorID, masjidID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, link); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "actor already manages this masjid")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create admin link")
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: masjidID,
		Subject:  actorID.String(),
		Action:   string(audit.EventAdminLinkCreated),
	})
	return link, nil
}

func (s *Service) Get(ctx context.Context, linkID id.AdminLinkID) (*Link, error) {
	link, err := s.store.FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "admin link not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin link")
	}
	return link, nil
}

func (s *Service) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Link, error) {
	links, err := s.store.ListByMasjid(ctx, masjidID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list admin links")
	}
	return links, nil
}

// MarkVerified is invoked by the verification approval hook.
func (s *Service) MarkVerified(ctx context.Context, linkID id.AdminLinkID) (*Link, error) {
	link, err := s.Get(ctx, linkID)
	if err != nil {
		return nil, err
	}

	link.MarkVerified(requestcontext.Now(ctx))
	if err := s.store.Update(ctx, link); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update admin link")
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: link.MasjidID,
		Subject:  link.ActorID.String(),
		Action:   string(audit.EventAdminLinkVerified),
	})
	return link, nil
}

// PurgeMasjid removes all links as part of masjid deletion.
func (s *Service) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	return s.store.PurgeMasjid(ctx, masjidID)
}
