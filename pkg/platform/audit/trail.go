package audit

import (
	"context"
	"log/slog"

	"minar/pkg/requestcontext"
)

// Trail is the emit side of the audit pipeline. Emission never blocks domain
// operations: when the inbox is full the event is dropped and logged.
type Trail struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewTrail(inbox chan<- Event, logger *slog.Logger) *Trail {
	return &Trail{inbox: inbox, logger: logger}
}

// Emit enqueues an audit event, stamping timestamp and request correlation
// from the context when the caller left them empty.
func (t *Trail) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		if actorID := requestcontext.ActorID(ctx); !actorID.IsNil() {
			event.ActorID = actorID.String()
		}
	}

	select {
	case t.inbox <- event:
	default:
		t.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", event.Action,
			"subject", event.Subject,
		)
	}
}

// NopTrail returns a Trail backed by a drained channel, for tests and for
// commands that run without the audit pipeline.
func NopTrail() *Trail {
	inbox := make(chan Event, 16)
	go func() {
		for range inbox {
		}
	}()
	return &Trail{
		inbox:  inbox,
		logger: slog.New(slog.DiscardHandler),
	}
}
