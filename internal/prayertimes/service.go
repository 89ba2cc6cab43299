package prayertimes

import (
	"context"
	"errors"
	"log/slog"

	"minar/internal/actor"
	"minar/internal/signal"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/sentinel"
	"minar/pkg/requestcontext"
)

// SignalRecorder is the slice of the signal service the upsert path uses.
// Publishing a schedule is evidence the masjid is looked after, so it feeds
// the confidence clock.
type SignalRecorder interface {
	Create(ctx context.Context, masjidID id.MasjidID, actorID *id.ActorID, sigType signal.Type, source signal.Source, description string) (*signal.Signal, error)
}

// Service manages prayer-time schedules.
type Service struct {
	store   Store
	cache   *Cache
	signals SignalRecorder
	logger  *slog.Logger
}

func NewService(store Store, cache *Cache, signals SignalRecorder, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		signals: signals,
		logger:  logger,
	}
}

// Upsert replaces the schedule for (masjid, date) and records an ACTIVE
// signal. Admin role gets ADMIN source, which keeps the confidence clock
// honest; anyone else contributes a SYSTEM signal that carries no weight.
func (s *Service) Upsert(ctx context.Context, masjidID id.MasjidID, date Date, entries map[Prayer]Entry) (*Schedule, error) {
	schedule, err := NewSchedule(masjidID, date, entries, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Upsert(ctx, schedule); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save schedule")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, masjidID, date); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate schedule cache",
				"masjid_id", masjidID,
				"error", err,
			)
		}
	}

	source := signal.SourceSystem
	role := actor.Role(requestcontext.ActorRole(ctx))
	if role == actor.RoleMasjidAdmin || role == actor.RoleStaff {
		source = signal.SourceAdmin
	}
	var actorID *id.ActorID
	if aid := requestcontext.ActorID(ctx); !aid.IsNil() {
		actorID = &aid
	}
	if _, err := s.signals.Create(ctx, masjidID, actorID, signal.TypeActive, source, "Prayer schedule published for "+string(date)); err != nil {
		// The schedule is saved; a failed signal must not undo it.
		s.logger.WarnContext(ctx, "failed to record schedule signal",
			"masjid_id", masjidID,
			"error", err,
		)
	}

	s.logger.InfoContext(ctx, "prayer schedule upserted",
		"masjid_id", masjidID,
		"date", string(date),
		"request_id", requestcontext.RequestID(ctx),
	)
	return schedule, nil
}

// Get reads through the cache.
func (s *Service) Get(ctx context.Context, masjidID id.MasjidID, date Date) (*Schedule, error) {
	if _, err := ParseDate(string(date)); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if schedule, ok := s.cache.Get(ctx, masjidID, date); ok {
			return schedule, nil
		}
	}

	schedule, err := s.store.Get(ctx, masjidID, date)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no schedule for this date")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load schedule")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, schedule); err != nil {
			s.logger.WarnContext(ctx, "failed to cache schedule",
				"masjid_id", masjidID,
				"error", err,
			)
		}
	}
	return schedule, nil
}

// PurgeMasjid removes all schedules as part of masjid deletion.
func (s *Service) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	return s.store.PurgeMasjid(ctx, masjidID)
}
