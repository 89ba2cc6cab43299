//go:build integration

package confidence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
	"minar/pkg/testutil/containers"
)

func seedMasjid(t *testing.T, pc *containers.PostgresContainer, masjidID id.MasjidID) {
	t.Helper()
	_, err := pc.DB.Exec(`
		INSERT INTO masjids (id, name, latitude, longitude, country_code, is_active, created_at, updated_at)
		VALUES ($1, 'Test Masjid', 0, 0, 'GB', TRUE, now(), now())
	`, uuid.UUID(masjidID))
	require.NoError(t, err)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	pc := containers.NewPostgresContainer(t, "../../migrations")
	store := NewPostgresStore(pc.DB)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("get missing record returns not found", func(t *testing.T) {
		_, err := store.Get(ctx, id.NewMasjidID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		masjidID := id.NewMasjidID()
		seedMasjid(t, pc, masjidID)

		record := NewRecord(masjidID, now)
		record.SetLevel(LevelAdmin, now)
		require.NoError(t, store.Save(ctx, record))

		got, err := store.Get(ctx, masjidID)
		require.NoError(t, err)
		assert.Equal(t, LevelAdmin, got.Level)
		require.NotNil(t, got.DecayDate)
		assert.True(t, got.DecayDate.Equal(now.AddDate(0, 0, 180)))
	})

	t.Run("save is an upsert", func(t *testing.T) {
		masjidID := id.NewMasjidID()
		seedMasjid(t, pc, masjidID)

		record := NewRecord(masjidID, now)
		record.SetLevel(LevelCommunity, now)
		require.NoError(t, store.Save(ctx, record))

		record.SetLevel(LevelVerified, now)
		require.NoError(t, store.Save(ctx, record))

		got, err := store.Get(ctx, masjidID)
		require.NoError(t, err)
		assert.Equal(t, LevelVerified, got.Level)
	})

	t.Run("list overdue honours the boundary", func(t *testing.T) {
		require.NoError(t, pc.TruncateAll(ctx, "confidence_records"))

		overdueID, freshID := id.NewMasjidID(), id.NewMasjidID()
		seedMasjid(t, pc, overdueID)
		seedMasjid(t, pc, freshID)

		overdue := NewRecord(overdueID, now.AddDate(0, 0, -200))
		overdue.SetLevel(LevelAdmin, now.AddDate(0, 0, -200))
		require.NoError(t, store.Save(ctx, overdue))

		fresh := NewRecord(freshID, now)
		fresh.SetLevel(LevelAdmin, now)
		require.NoError(t, store.Save(ctx, fresh))

		records, err := store.ListOverdue(ctx, now)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, overdueID, records[0].MasjidID)
	})

	t.Run("list by level", func(t *testing.T) {
		require.NoError(t, pc.TruncateAll(ctx, "confidence_records"))

		verifiedID, adminID := id.NewMasjidID(), id.NewMasjidID()
		seedMasjid(t, pc, verifiedID)
		seedMasjid(t, pc, adminID)

		verified := NewRecord(verifiedID, now)
		verified.SetLevel(LevelVerified, now)
		require.NoError(t, store.Save(ctx, verified))

		admin := NewRecord(adminID, now)
		admin.SetLevel(LevelAdmin, now)
		require.NoError(t, store.Save(ctx, admin))

		records, err := store.ListByLevel(ctx, LevelVerified)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, verifiedID, records[0].MasjidID)
	})

	t.Run("purge removes the record", func(t *testing.T) {
		masjidID := id.NewMasjidID()
		seedMasjid(t, pc, masjidID)

		record := NewRecord(masjidID, now)
		record.SetLevel(LevelCommunity, now)
		require.NoError(t, store.Save(ctx, record))

		require.NoError(t, store.PurgeMasjid(ctx, masjidID))

		_, err := store.Get(ctx, masjidID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("transactional read-modify-write commits", func(t *testing.T) {
		masjidID := id.NewMasjidID()
		seedMasjid(t, pc, masjidID)

		record := NewRecord(masjidID, now)
		record.SetLevel(LevelCommunity, now)
		require.NoError(t, store.Save(ctx, record))

		tx := NewPostgresTx(pc.DB)
		err := tx.RunInTx(ctx, func(ctx context.Context) error {
			got, err := store.Get(ctx, masjidID)
			if err != nil {
				return err
			}
			got.SetLevel(LevelAdmin, now)
			return store.Save(ctx, got)
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, masjidID)
		require.NoError(t, err)
		assert.Equal(t, LevelAdmin, got.Level)
	})
}
