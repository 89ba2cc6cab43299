package main

import (
	"context"

	"minar/internal/confidence"
	"minar/internal/signal"
)

// confidenceProcessor narrows the confidence service to the processor hook
// the signal service fires on every new signal.
type confidenceProcessor struct {
	service *confidence.Service
}

func (p confidenceProcessor) ProcessSignal(ctx context.Context, sig *signal.Signal) error {
	_, err := p.service.ProcessSignal(ctx, sig)
	return err
}
