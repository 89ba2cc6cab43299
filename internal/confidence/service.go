package confidence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	confmetrics "minar/internal/confidence/metrics"
	"minar/internal/signal"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/platform/sentinel"
	"minar/pkg/requestcontext"
)

// AdminLinks is the slice of the admin-link domain the inactivity sweep
// needs: which actors hold a verified-identity link to a masjid.
type AdminLinks interface {
	ListVerifiedActors(ctx context.Context, masjidID id.MasjidID) ([]id.ActorID, error)
}

// LastSeen reads the external session system's last-activity timestamp. The
// sweep only consumes it, never writes it.
type LastSeen interface {
	Last(ctx context.Context, actorID id.ActorID) (time.Time, bool, error)
}

// Service owns the confidence state machine: signal processing, both decay
// paths, and the verification approval escalation.
type Service struct {
	store   Store
	signals signal.Store
	links   AdminLinks
	seen    LastSeen
	tx      Tx
	metrics *confmetrics.Metrics
	trail   *audit.Trail
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewService(store Store, signals signal.Store, links AdminLinks, seen LastSeen, tx Tx, metrics *confmetrics.Metrics, trail *audit.Trail, logger *slog.Logger) *Service {
	if tx == nil {
		tx = NewMutexTx()
	}
	return &Service{
		store:   store,
		signals: signals,
		links:   links,
		seen:    seen,
		tx:      tx,
		metrics: metrics,
		trail:   trail,
		logger:  logger,
		tracer:  otel.Tracer("minar/confidence"),
	}
}

// Get returns the masjid's record, or the implicit unconfirmed state when no
// record exists yet. The implicit record is not persisted.
func (s *Service) Get(ctx context.Context, masjidID id.MasjidID) (*Record, error) {
	record, err := s.store.Get(ctx, masjidID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return NewRecord(masjidID, requestcontext.Now(ctx)), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load confidence record")
	}
	return record, nil
}

// ProcessSignal applies a freshly persisted signal to the masjid's record
// and returns the record whether or not it changed. ADMIN sources escalate
// unconditionally; USER sources escalate only through community counting;
// SYSTEM sources are informational.
func (s *Service) ProcessSignal(ctx context.Context, sig *signal.Signal) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "confidence.ProcessSignal")
	defer span.End()

	var out *Record
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		record, err := s.getOrCreate(ctx, sig.MasjidID, now)
		if err != nil {
			return err
		}
		before := record.Level

		switch sig.Source {
		case signal.SourceAdmin:
			// Repeated admin signals at the ceiling still refresh the decay
			// clock.
			record.SetLevel(EscalateForAdmin(record.Level), now)

		case signal.SourceUser:
			cutoff := now.AddDate(0, 0, -CommunityWindowDays)
			count, err := s.signals.CountDistinctUserActors(ctx, sig.MasjidID, cutoff)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count community signals")
			}
			if CommunityEligible(record.Level, count) {
				record.SetLevel(LevelCommunity, now)
			}

		case signal.SourceSystem:
			// Informational only.
		}

		if err := s.store.Save(ctx, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save confidence record")
		}

		if record.Level != before {
			s.noteLevelChange(ctx, record, before, string(sig.Source))
		}
		out = record
		return nil
	})
	return out, err
}

// DecayOne applies the single-step decay gate to one masjid. It reports
// whether a decay actually happened; an unconfirmed record or a record whose
// decay date has not arrived is left untouched.
func (s *Service) DecayOne(ctx context.Context, masjidID id.MasjidID) (bool, error) {
	var decayed bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		record, err := s.store.Get(ctx, masjidID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load confidence record")
		}

		if !ShouldDecay(record, now) {
			return nil
		}

		before := record.Level
		record.SetLevel(DecayedLevel(record.Level), now)
		if err := s.store.Save(ctx, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save confidence record")
		}

		decayed = true
		s.metrics.IncrementDecay("scheduled")
		s.logger.InfoContext(ctx, "confidence decayed",
			"masjid_id", record.MasjidID,
			"from", int(before),
			"to", int(record.Level),
		)
		return nil
	})
	return decayed, err
}

// DecayAllOverdue sweeps every record whose decay date has passed, dropping
// each by exactly one level. A record overdue by months still drops a single
// level per sweep; the fresh decay date gates the next step.
func (s *Service) DecayAllOverdue(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "confidence.DecayAllOverdue")
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.ObserveSweepDuration("overdue", time.Since(start).Seconds())
	}()

	overdue, err := s.store.ListOverdue(ctx, requestcontext.Now(ctx))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list overdue records")
	}

	count := 0
	for _, record := range overdue {
		decayed, err := s.DecayOne(ctx, record.MasjidID)
		if err != nil {
			return count, err
		}
		if decayed {
			count++
		}
	}

	if count > 0 {
		s.trail.Emit(ctx, audit.Event{
			Subject: "scheduled_decay_sweep",
			Action:  string(audit.EventConfidenceDecayed),
			Outcome: "scheduled",
		})
	}
	return count, nil
}

// DecayInactiveAdmins forces verified-level records down to admin-confirmed
// when every verified-identity admin of the masjid has been inactive beyond
// the grace period. This bypasses the per-level decay gate: the verified
// claim depends on an accountable admin, so the clock is irrelevant once the
// admin disappears.
func (s *Service) DecayInactiveAdmins(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "confidence.DecayInactiveAdmins")
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.ObserveSweepDuration("inactive_admins", time.Since(start).Seconds())
	}()

	now := requestcontext.Now(ctx)
	cutoff := now.AddDate(0, 0, -AdminInactivityDays)

	verified, err := s.store.ListByLevel(ctx, LevelVerified)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verified records")
	}

	count := 0
	for _, candidate := range verified {
		actors, err := s.links.ListVerifiedActors(ctx, candidate.MasjidID)
		if err != nil {
			return count, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verified admins")
		}
		if len(actors) == 0 {
			// Not a candidate: the sweep only covers masjids whose verified
			// level is backed by a verified-identity link.
			continue
		}

		active, err := s.anyActiveSince(ctx, actors, cutoff)
		if err != nil {
			return count, err
		}
		if active {
			continue
		}

		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			record, err := s.store.Get(ctx, candidate.MasjidID)
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load confidence record")
			}
			if record.Level != LevelVerified {
				// Lost the race with another sweep or a decay.
				return nil
			}

			record.SetLevel(LevelAdmin, now)
			if err := s.store.Save(ctx, record); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save confidence record")
			}

			count++
			s.metrics.IncrementDecay("inactive_admin")
			s.trail.Emit(ctx, audit.Event{
				MasjidID: record.MasjidID,
				Subject:  "admin_inactivity",
				Action:   string(audit.EventConfidenceDecayed),
				Outcome:  "inactive_admin",
			})
			s.logger.InfoContext(ctx, "confidence forced down for admin inactivity",
				"masjid_id", record.MasjidID,
			)
			return nil
		})
		if err != nil {
			return count, err
		}
	}

	return count, nil
}

// ForceVerified is the approval hook's escalation: the record jumps straight
// to the verified level from any starting point. Document-based identity
// review is stronger evidence than any signal sequence, so this is the only
// direct path to the top level.
func (s *Service) ForceVerified(ctx context.Context, masjidID id.MasjidID) (*Record, error) {
	var out *Record
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		record, err := s.getOrCreate(ctx, masjidID, now)
		if err != nil {
			return err
		}
		before := record.Level

		record.SetLevel(LevelVerified, now)
		if err := s.store.Save(ctx, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save confidence record")
		}

		if record.Level != before {
			s.noteLevelChange(ctx, record, before, "verification_approval")
		}
		out = record
		return nil
	})
	return out, err
}

// PurgeMasjid removes the record as part of masjid deletion.
func (s *Service) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	return s.store.PurgeMasjid(ctx, masjidID)
}

func (s *Service) getOrCreate(ctx context.Context, masjidID id.MasjidID, now time.Time) (*Record, error) {
	record, err := s.store.Get(ctx, masjidID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return NewRecord(masjidID, now), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load confidence record")
	}
	return record, nil
}

func (s *Service) noteLevelChange(ctx context.Context, record *Record, before Level, trigger string) {
	s.metrics.IncrementEscalation(trigger)
	s.trail.Emit(ctx, audit.Event{
		MasjidID: record.MasjidID,
		Subject:  trigger,
		Action:   string(audit.EventConfidenceChanged),
	})
	s.logger.InfoContext(ctx, "confidence level changed",
		"masjid_id", record.MasjidID,
		"from", int(before),
		"to", int(record.Level),
		"trigger", trigger,
	)
}

func (s *Service) anyActiveSince(ctx context.Context, actors []id.ActorID, cutoff time.Time) (bool, error) {
	for _, actorID := range actors {
		last, ok, err := s.seen.Last(ctx, actorID)
		if err != nil {
			return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read last-seen")
		}
		if ok && last.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}
