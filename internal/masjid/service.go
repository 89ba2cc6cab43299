package masjid

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

// Purger removes everything a domain holds for a masjid. Confidence records,
// signals, badges, and admin links register one each so deletion cascades
// without the masjid service importing those packages.
type Purger interface {
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}

// CreatedCounter is the slice of platform metrics the service touches.
type CreatedCounter interface {
	IncrementMasjidsCreated()
}

// Service manages the masjid directory.
type Service struct {
	store   Store
	purgers []Purger
	metrics CreatedCounter
	trail   *audit.Trail
	logger  *slog.Logger
}

func NewService(store Store, metrics CreatedCounter, trail *audit.Trail, logger *slog.Logger, purgers ...Purger) *Service {
	return &Service{
		store:   store,
		purgers: purgers,
		metrics: metrics,
		trail:   trail,
		logger:  logger,
	}
}

func (s *Service) Create(ctx context.Context, name, description string, location Location) (*Masjid, error) {
	m, err := NewMasjid(id.NewMasjidID(), name, description, location, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create masjid")
	}

	if s.metrics != nil {
		s.metrics.IncrementMasjidsCreated()
	}
	s.trail.Emit(ctx, audit.Event{
		MasjidID: m.ID,
		Subject:  m.Name,
		Action:   string(audit.EventMasjidCreated),
	})
	s.logger.InfoContext(ctx, "masjid created",
		"masjid_id", m.ID,
		"request_id", requestcontext.RequestID(ctx),
	)

	return m, nil
}

func (s *Service) Get(ctx context.Context, masjidID id.MasjidID) (*Masjid, error) {
	m, err := s.store.FindByID(ctx, masjidID)
	if err != nil {
		return nil, wrapMasjidErr(err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Masjid, error) {
	masjids, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list masjids")
	}
	return masjids, nil
}

func (s *Service) Update(ctx context.Context, masjidID id.MasjidID, name, description string, location Location) (*Masjid, error) {
	m, err := s.store.FindByID(ctx, masjidID)
	if err != nil {
		return nil, wrapMasjidErr(err)
	}

	if err := m.ApplyUpdate(name, description, location, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, m); err != nil {
		return nil, wrapMasjidErr(err)
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: m.ID,
		Subject:  m.Name,
		Action:   string(audit.EventMasjidUpdated),
	})
	return m, nil
}

// Deactivate is the soft switch. Existing badges stay in place but fail the
// validity engine on their next check.
func (s *Service) Deactivate(ctx context.Context, masjidID id.MasjidID) (*Masjid, error) {
	m, err := s.store.FindByID(ctx, masjidID)
	if err != nil {
		return nil, wrapMasjidErr(err)
	}
	if !m.IsActive {
		return nil, dErrors.New(dErrors.CodeConflict, "masjid is already inactive")
	}

	m.IsActive = false
	m.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, m); err != nil {
		return nil, wrapMasjidErr(err)
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: m.ID,
		Subject:  m.Name,
		Action:   string(audit.EventMasjidDeactivated),
	})
	return m, nil
}

// Delete removes the masjid and cascades through every registered purger.
// Dependent records go first so a partial failure never leaves orphans
// pointing at a missing masjid.
func (s *Service) Delete(ctx context.Context, masjidID id.MasjidID) error {
	m, err := s.store.FindByID(ctx, masjidID)
	if err != nil {
		return wrapMasjidErr(err)
	}

	for _, purger := range s.purgers {
		if err := purger.PurgeMasjid(ctx, masjidID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to cascade masjid deletion")
		}
	}

	if err := s.store.Delete(ctx, masjidID); err != nil {
		return wrapMasjidErr(err)
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: masjidID,
		Subject:  m.Name,
		Action:   string(audit.EventMasjidDeleted),
	})
	s.logger.InfoContext(ctx, "masjid deleted",
		"masjid_id", masjidID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func wrapMasjidErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "masjid not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "masjid store failure")
}
