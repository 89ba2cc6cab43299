package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the inbox and fans them out to every
// configured sink. A failing sink is logged and skipped so one slow or broken
// backend cannot stall the others.
type Worker struct {
	inbox  <-chan Event
	sinks  []Sink
	logger *slog.Logger
}

func NewWorker(inbox <-chan Event, logger *slog.Logger, sinks ...Sink) *Worker {
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			for _, sink := range w.sinks {
				if err := sink.Append(ctx, event); err != nil {
					w.logger.ErrorContext(ctx, "audit sink append failed",
						"action", event.Action,
						"subject", event.Subject,
						"error", err,
					)
				}
			}
		}
	}
}
