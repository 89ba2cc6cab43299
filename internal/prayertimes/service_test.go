package prayertimes

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minar/internal/actor"
	"minar/internal/signal"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/requestcontext"
)

type recordedSignal struct {
	masjidID    id.MasjidID
	source      signal.Source
	sigType     signal.Type
	description string
}

type fakeRecorder struct {
	recorded []recordedSignal
}

func (f *fakeRecorder) Create(_ context.Context, masjidID id.MasjidID, _ *id.ActorID, sigType signal.Type, source signal.Source, description string) (*signal.Signal, error) {
	f.recorded = append(f.recorded, recordedSignal{masjidID: masjidID, source: source, sigType: sigType, description: description})
	return &signal.Signal{MasjidID: masjidID, Type: sigType, Source: source, Description: description}, nil
}

func newTestService() (*Service, *fakeRecorder) {
	recorder := &fakeRecorder{}
	svc := NewService(NewInMemoryStore(), nil, recorder, slog.New(slog.DiscardHandler))
	return svc, recorder
}

func clock(raw string) *ClockTime {
	ct := ClockTime(raw)
	return &ct
}

func fullDay() map[Prayer]Entry {
	return map[Prayer]Entry{
		PrayerFajr:    {Adhan: clock("05:12"), Iqama: clock("05:30")},
		PrayerDhuhr:   {Adhan: clock("13:05"), Iqama: clock("13:20")},
		PrayerAsr:     {Adhan: clock("16:45")},
		PrayerMaghrib: {Iqama: clock("20:02")},
		PrayerIsha:    {Adhan: clock("21:30"), Iqama: clock("21:45")},
	}
}

func TestUpsertAndGet(t *testing.T) {
	svc, _ := newTestService()
	masjidID := id.NewMasjidID()

	_, err := svc.Upsert(context.Background(), masjidID, "2026-06-01", fullDay())
	require.NoError(t, err)

	schedule, err := svc.Get(context.Background(), masjidID, "2026-06-01")
	require.NoError(t, err)
	assert.Len(t, schedule.Entries, 5)
	assert.Equal(t, clock("05:12"), schedule.Entries[PrayerFajr].Adhan)
}

func TestUpsertReplacesDay(t *testing.T) {
	svc, _ := newTestService()
	masjidID := id.NewMasjidID()

	_, err := svc.Upsert(context.Background(), masjidID, "2026-06-01", fullDay())
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), masjidID, "2026-06-01", map[Prayer]Entry{
		PrayerFajr: {Adhan: clock("05:15")},
	})
	require.NoError(t, err)

	schedule, err := svc.Get(context.Background(), masjidID, "2026-06-01")
	require.NoError(t, err)
	assert.Len(t, schedule.Entries, 1, "upsert replaces the whole day")
}

func TestUpsertEmitsAdminSignalForAdmins(t *testing.T) {
	for _, role := range []actor.Role{actor.RoleMasjidAdmin, actor.RoleStaff} {
		t.Run(string(role), func(t *testing.T) {
			svc, recorder := newTestService()
			masjidID := id.NewMasjidID()

			ctx := requestcontext.WithActorRole(context.Background(), string(role))
			ctx = requestcontext.WithActorID(ctx, id.NewActorID())

			_, err := svc.Upsert(ctx, masjidID, "2026-06-01", fullDay())
			require.NoError(t, err)

			require.Len(t, recorder.recorded, 1)
			assert.Equal(t, signal.SourceAdmin, recorder.recorded[0].source)
			assert.Equal(t, signal.TypeActive, recorder.recorded[0].sigType)
			assert.Contains(t, recorder.recorded[0].description, "2026-06-01")
		})
	}
}

func TestUpsertEmitsSystemSignalForOthers(t *testing.T) {
	svc, recorder := newTestService()

	_, err := svc.Upsert(context.Background(), id.NewMasjidID(), "2026-06-01", fullDay())
	require.NoError(t, err)

	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, signal.SourceSystem, recorder.recorded[0].source)
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := newTestService()
	masjidID := id.NewMasjidID()

	tests := []struct {
		name    string
		date    Date
		entries map[Prayer]Entry
	}{
		{name: "bad date", date: "01-06-2026", entries: fullDay()},
		{name: "no entries", date: "2026-06-01", entries: nil},
		{name: "unknown prayer", date: "2026-06-01", entries: map[Prayer]Entry{
			Prayer("tahajjud"): {Adhan: clock("03:00")},
		}},
		{name: "entry with no times", date: "2026-06-01", entries: map[Prayer]Entry{
			PrayerFajr: {},
		}},
		{name: "malformed time", date: "2026-06-01", entries: map[Prayer]Entry{
			PrayerFajr: {Adhan: clock("5am")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), masjidID, tt.date, tt.entries)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestGetUnknownSchedule(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), id.NewMasjidID(), "2026-06-01")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
