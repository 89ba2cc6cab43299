package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "minar/pkg/domain"
)

const lastSeenKeyPrefix = "lastseen:actor:"

// lastSeenTTL bounds how long activity records live. It must exceed the
// longest admin-inactivity grace period so the sweep never mistakes an
// expired key for an actor that was never seen.
const lastSeenTTL = 400 * 24 * time.Hour

// RedisLastSeenStore is the production implementation for distributed
// deployments where every API instance must share activity state.
type RedisLastSeenStore struct {
	client *redis.Client
}

func NewRedisLastSeenStore(client *redis.Client) *RedisLastSeenStore {
	return &RedisLastSeenStore{client: client}
}

func (s *RedisLastSeenStore) Touch(ctx context.Context, actorID id.ActorID, at time.Time) error {
	key := lastSeenKeyPrefix + actorID.String()
	if err := s.client.Set(ctx, key, at.UTC().Format(time.RFC3339Nano), lastSeenTTL).Err(); err != nil {
		return fmt.Errorf("set last-seen: %w", err)
	}
	return nil
}

func (s *RedisLastSeenStore) Last(ctx context.Context, actorID id.ActorID) (time.Time, bool, error) {
	key := lastSeenKeyPrefix + actorID.String()
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get last-seen: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last-seen value: %w", err)
	}
	return at, true, nil
}
