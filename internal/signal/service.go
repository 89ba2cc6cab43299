package signal

import (
	"context"
	"log/slog"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/requestcontext"
)

// Service records signals and hands them to the confidence processor. Signals
// are append-only; there is no update or delete except the masjid cascade.
type Service struct {
	store     Store
	processor Processor
	metrics   *Metrics
	trail     *audit.Trail
	logger    *slog.Logger
}

func NewService(store Store, processor Processor, metrics *Metrics, trail *audit.Trail, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		processor: processor,
		metrics:   metrics,
		trail:     trail,
		logger:    logger,
	}
}

// Create persists the signal, then invokes the processor synchronously so the
// caller observes the post-signal confidence state. Processing failure fails
// the request: a signal that was stored but never processed would silently
// skew community counting.
func (s *Service) Create(ctx context.Context, masjidID id.MasjidID, actorID *id.ActorID, sigType Type, source Source, description string) (*Signal, error) {
	sig, err := NewSignal(id.NewSignalID(), masjidID, actorID, sigType, source, description, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sig); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save signal")
	}

	if err := s.processor.ProcessSignal(ctx, sig); err != nil {
		return nil, err
	}

	s.metrics.IncrementSignal(sig.Type, sig.Source)
	s.trail.Emit(ctx, audit.Event{
		MasjidID: sig.MasjidID,
		Subject:  string(sig.Type),
		Action:   string(audit.EventSignalRecorded),
		Outcome:  string(sig.Source),
	})
	s.logger.InfoContext(ctx, "signal recorded",
		"masjid_id", sig.MasjidID,
		"type", sig.Type,
		"source", sig.Source,
		"request_id", requestcontext.RequestID(ctx),
	)

	return sig, nil
}

// ListByMasjid returns a masjid's signals, newest first.
func (s *Service) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Signal, error) {
	signals, err := s.store.ListByMasjid(ctx, masjidID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list signals")
	}
	return signals, nil
}
