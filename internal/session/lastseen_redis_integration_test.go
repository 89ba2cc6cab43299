//go:build integration

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minar/pkg/domain"
	"minar/pkg/testutil/containers"
)

func TestRedisLastSeenStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedisLastSeenStore(rc.Client)
	ctx := context.Background()

	t.Run("unknown actor reports not seen", func(t *testing.T) {
		_, seen, err := store.Last(ctx, id.NewActorID())
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("touch then read", func(t *testing.T) {
		actorID := id.NewActorID()
		at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, store.Touch(ctx, actorID, at))

		got, seen, err := store.Last(ctx, actorID)
		require.NoError(t, err)
		require.True(t, seen)
		assert.True(t, got.Equal(at))
	})

	t.Run("touch overwrites with the newer stamp", func(t *testing.T) {
		actorID := id.NewActorID()
		first := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		second := first.Add(2 * time.Hour)

		require.NoError(t, store.Touch(ctx, actorID, first))
		require.NoError(t, store.Touch(ctx, actorID, second))

		got, seen, err := store.Last(ctx, actorID)
		require.NoError(t, err)
		require.True(t, seen)
		assert.True(t, got.Equal(second))
	})
}
