package signal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minar/pkg/domain"
)

func save(t *testing.T, store *InMemoryStore, masjidID id.MasjidID, actorID *id.ActorID, source Source, at time.Time) {
	t.Helper()
	sig, err := NewSignal(id.NewSignalID(), masjidID, actorID, TypePrayed, source, "", at)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sig))
}

func TestCountDistinctUserActors(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -30)
	masjidID := id.NewMasjidID()

	actorA := id.NewActorID()
	actorB := id.NewActorID()
	actorC := id.NewActorID()

	t.Run("same actor counts once", func(t *testing.T) {
		store := NewInMemoryStore()
		save(t, store, masjidID, &actorA, SourceUser, now.Add(-time.Hour))
		save(t, store, masjidID, &actorA, SourceUser, now.Add(-2*time.Hour))
		save(t, store, masjidID, &actorA, SourceUser, now.Add(-3*time.Hour))

		count, err := store.CountDistinctUserActors(context.Background(), masjidID, cutoff)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("anonymous signals never count", func(t *testing.T) {
		store := NewInMemoryStore()
		save(t, store, masjidID, nil, SourceUser, now.Add(-time.Hour))
		save(t, store, masjidID, &actorA, SourceUser, now.Add(-time.Hour))

		count, err := store.CountDistinctUserActors(context.Background(), masjidID, cutoff)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("non-user sources never count", func(t *testing.T) {
		store := NewInMemoryStore()
		save(t, store, masjidID, &actorA, SourceAdmin, now.Add(-time.Hour))
		save(t, store, masjidID, &actorB, SourceSystem, now.Add(-time.Hour))

		count, err := store.CountDistinctUserActors(context.Background(), masjidID, cutoff)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("signals outside window never count", func(t *testing.T) {
		store := NewInMemoryStore()
		save(t, store, masjidID, &actorA, SourceUser, cutoff.Add(-time.Second))
		save(t, store, masjidID, &actorB, SourceUser, cutoff)
		save(t, store, masjidID, &actorC, SourceUser, now)

		count, err := store.CountDistinctUserActors(context.Background(), masjidID, cutoff)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("other masjids are isolated", func(t *testing.T) {
		store := NewInMemoryStore()
		save(t, store, id.NewMasjidID(), &actorA, SourceUser, now.Add(-time.Hour))

		count, err := store.CountDistinctUserActors(context.Background(), masjidID, cutoff)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestListByMasjidNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	masjidID := id.NewMasjidID()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	save(t, store, masjidID, nil, SourceSystem, base)
	save(t, store, masjidID, nil, SourceSystem, base.Add(2*time.Hour))
	save(t, store, masjidID, nil, SourceSystem, base.Add(time.Hour))

	signals, err := store.ListByMasjid(context.Background(), masjidID)
	require.NoError(t, err)
	require.Len(t, signals, 3)
	assert.Equal(t, base.Add(2*time.Hour), signals[0].CreatedAt)
	assert.Equal(t, base.Add(time.Hour), signals[1].CreatedAt)
	assert.Equal(t, base, signals[2].CreatedAt)
}

func TestPurgeMasjid(t *testing.T) {
	store := NewInMemoryStore()
	masjidID := id.NewMasjidID()
	save(t, store, masjidID, nil, SourceSystem, time.Now())

	require.NoError(t, store.PurgeMasjid(context.Background(), masjidID))

	signals, err := store.ListByMasjid(context.Background(), masjidID)
	require.NoError(t, err)
	assert.Empty(t, signals)
}
