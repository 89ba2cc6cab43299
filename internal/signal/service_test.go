package signal

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
)

type stubProcessor struct {
	processed []*Signal
	err       error
}

func (p *stubProcessor) ProcessSignal(_ context.Context, sig *Signal) error {
	if p.err != nil {
		return p.err
	}
	p.processed = append(p.processed, sig)
	return nil
}

func newSignalService(processor *stubProcessor) (*Service, *InMemoryStore) {
	store := NewInMemoryStore()
	svc := NewService(store, processor, nil, audit.NopTrail(), slog.New(slog.DiscardHandler))
	return svc, store
}

func TestCreateInvokesProcessor(t *testing.T) {
	processor := &stubProcessor{}
	svc, _ := newSignalService(processor)
	masjidID := id.NewMasjidID()
	actorID := id.NewActorID()

	sig, err := svc.Create(context.Background(), masjidID, &actorID, TypePrayed, SourceUser, "")
	require.NoError(t, err)

	require.Len(t, processor.processed, 1)
	assert.Equal(t, sig.ID, processor.processed[0].ID)
}

func TestCreateKeepsDescription(t *testing.T) {
	svc, store := newSignalService(&stubProcessor{})
	masjidID := id.NewMasjidID()

	sig, err := svc.Create(context.Background(), masjidID, nil, TypeActive, SourceUser, "  Reported via community form  ")
	require.NoError(t, err)
	assert.Equal(t, "Reported via community form", sig.Description)

	signals, err := store.ListByMasjid(context.Background(), masjidID)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, "Reported via community form", signals[0].Description)
}

func TestCreateFailsWhenProcessorFails(t *testing.T) {
	processor := &stubProcessor{err: dErrors.New(dErrors.CodeInternal, "processor down")}
	svc, _ := newSignalService(processor)

	_, err := svc.Create(context.Background(), id.NewMasjidID(), nil, TypeActive, SourceSystem, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestCreateRejectsInvalidType(t *testing.T) {
	svc, _ := newSignalService(&stubProcessor{})

	_, err := svc.Create(context.Background(), id.NewMasjidID(), nil, Type("BOGUS"), SourceUser, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestCreateDropsNilUUIDActor(t *testing.T) {
	processor := &stubProcessor{}
	svc, _ := newSignalService(processor)
	var zero id.ActorID

	sig, err := svc.Create(context.Background(), id.NewMasjidID(), &zero, TypeJummah, SourceUser, "")
	require.NoError(t, err)
	assert.Nil(t, sig.ActorID, "nil-UUID actor must be stored as anonymous")
}

func TestCreateRejectsInvalidSource(t *testing.T) {
	svc, _ := newSignalService(&stubProcessor{})

	_, err := svc.Create(context.Background(), id.NewMasjidID(), nil, TypePrayed, Source("ROBOT"), "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
