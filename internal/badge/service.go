package badge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"minar/internal/badge/metrics"
	"minar/internal/confidence"
	"minar/internal/masjid"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/platform/sentinel"
	"minar/pkg/requestcontext"
)

// MasjidDirectory is the slice of the masjid service the validity engine
// needs to decide whether the badge's masjid is still listed and active.
type MasjidDirectory interface {
	Get(ctx context.Context, masjidID id.MasjidID) (*masjid.Masjid, error)
}

// ConfidenceReader reports the current confidence record for a masjid. An
// implicit floor record (level 0) is expected when none has been persisted.
type ConfidenceReader interface {
	Get(ctx context.Context, masjidID id.MasjidID) (*confidence.Record, error)
}

// VerifyResult is what embedding sites see when they check a badge token.
type VerifyResult struct {
	Valid      bool
	MasjidID   id.MasjidID
	MasjidName string
	IssuedAt   time.Time
	ExpiresAt  *time.Time
}

type Service struct {
	store      Store
	masjids    MasjidDirectory
	confidence ConfidenceReader
	metrics    *metrics.Metrics
	trail      *audit.Trail
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewService(store Store, masjids MasjidDirectory, confidence ConfidenceReader, m *metrics.Metrics, trail *audit.Trail, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		masjids:    masjids,
		confidence: confidence,
		metrics:    m,
		trail:      trail,
		logger:     logger,
		tracer:     otel.Tracer("minar/badge"),
	}
}

// Issue mints a badge for a masjid. Only masjids at admin-verified confidence
// or above qualify; the caller is recorded as the issuer.
func (s *Service) Issue(ctx context.Context, masjidID id.MasjidID, issuedBy id.ActorID, expiry *time.Time) (*Badge, error) {
	m, err := s.masjids.Get(ctx, masjidID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, dErrors.New(dErrors.CodeConflict, "masjid is not active")
	}

	record, err := s.confidence.Get(ctx, masjidID)
	if err != nil {
		return nil, err
	}
	if record.Level < confidence.LevelAdmin {
		return nil, dErrors.New(dErrors.CodeConflict, "masjid confidence level is too low for a badge")
	}

	now := requestcontext.Now(ctx)
	if expiry != nil && !expiry.After(now) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "expiry date must be in the future")
	}

	b := &Badge{
		ID:         id.NewBadgeID(),
		Token:      uuid.NewString(),
		MasjidID:   masjidID,
		IssuedBy:   issuedBy,
		IssuedAt:   now,
		ExpiryDate: expiry,
		IsActive:   true,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create badge")
	}

	s.metrics.IncrementIssued()
	s.trail.Emit(ctx, audit.Event{
		MasjidID: masjidID,
		Subject:  b.ID.String(),
		Action:   string(audit.EventBadgeIssued),
	})
	return b, nil
}

// Revoke permanently invalidates a badge. Revocation is one-way; a masjid
// that re-qualifies gets a new badge, not a resurrected one.
func (s *Service) Revoke(ctx context.Context, badgeID id.BadgeID) (*Badge, error) {
	b, err := s.Get(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	if b.IsRevoked {
		return nil, dErrors.New(dErrors.CodeConflict, "badge is already revoked")
	}

	b.IsRevoked = true
	b.IsActive = false
	if err := s.store.Update(ctx, b); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update badge")
	}

	s.metrics.IncrementRevoked()
	s.trail.Emit(ctx, audit.Event{
		MasjidID: b.MasjidID,
		Subject:  b.ID.String(),
		Action:   string(audit.EventBadgeRevoked),
	})
	return b, nil
}

func (s *Service) Get(ctx context.Context, badgeID id.BadgeID) (*Badge, error) {
	b, err := s.store.FindByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "badge not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge")
	}
	return b, nil
}

func (s *Service) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Badge, error) {
	badges, err := s.store.ListByMasjid(ctx, masjidID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list badges")
	}
	return badges, nil
}

// Verify resolves a public badge token and runs the validity engine against
// current state. Every lookup stamps LastCheckedAt, valid or not.
func (s *Service) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "badge.Verify")
	defer span.End()

	b, err := s.store.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "badge not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load badge")
	}

	now := requestcontext.Now(ctx)
	b.LastCheckedAt = &now

	valid, reason, err := s.checkValidity(ctx, b, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, b); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update badge")
	}

	s.metrics.IncrementCheck(reason)
	if !valid && reason != ReasonRevoked && reason != ReasonInactive {
		// Only freshly discovered invalidity is audit-worthy; repeat checks
		// against an already-dead badge are just traffic.
		s.trail.Emit(ctx, audit.Event{
			MasjidID: b.MasjidID,
			Subject:  b.ID.String(),
			Action:   string(audit.EventBadgeDeactivated),
			Reason:   reason,
		})
	}

	result := &VerifyResult{
		Valid:     valid,
		MasjidID:  b.MasjidID,
		IssuedAt:  b.IssuedAt,
		ExpiresAt: b.ExpiryDate,
	}
	if m, err := s.masjids.Get(ctx, b.MasjidID); err == nil {
		result.MasjidName = m.Name
	}
	return result, nil
}

// checkValidity applies the deactivation rules in order. Flags already
// cleared short-circuit without touching the record; every other failure
// deactivates the badge in place so the caller's Update persists it.
func (s *Service) checkValidity(ctx context.Context, b *Badge, now time.Time) (bool, string, error) {
	if b.IsRevoked {
		return false, ReasonRevoked, nil
	}
	if !b.IsActive {
		return false, ReasonInactive, nil
	}

	if b.ExpiryDate != nil && !now.Before(*b.ExpiryDate) {
		b.IsActive = false
		return false, ReasonExpired, nil
	}

	m, err := s.masjids.Get(ctx, b.MasjidID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			b.IsActive = false
			return false, ReasonMasjidInactive, nil
		}
		return false, "", err
	}
	if !m.IsActive {
		b.IsActive = false
		return false, ReasonMasjidInactive, nil
	}

	record, err := s.confidence.Get(ctx, b.MasjidID)
	if err != nil {
		return false, "", err
	}
	if record.Level < confidence.LevelAdmin {
		b.IsActive = false
		return false, ReasonInsufficientConfidence, nil
	}

	return true, ReasonValid, nil
}

// PurgeMasjid removes all badges as part of masjid deletion.
func (s *Service) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	return s.store.PurgeMasjid(ctx, masjidID)
}
