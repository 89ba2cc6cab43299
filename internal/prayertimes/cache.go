package prayertimes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "minar/pkg/domain"
)

const cacheKeyPrefix = "prayertimes:"

// Cache is a read-through Redis cache for schedules. Reads are best effort:
// a cache failure falls back to the store; only writes surface errors.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type cachedEntry struct {
	Adhan *string `json:"adhan,omitempty"`
	Iqama *string `json:"iqama,omitempty"`
}

type cachedSchedule struct {
	Entries   map[string]cachedEntry `json:"entries"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func cacheKey(masjidID id.MasjidID, date Date) string {
	return cacheKeyPrefix + masjidID.String() + ":" + string(date)
}

func (c *Cache) Get(ctx context.Context, masjidID id.MasjidID, date Date) (*Schedule, bool) {
	raw, err := c.client.Get(ctx, cacheKey(masjidID, date)).Bytes()
	if errors.Is(err, redis.Nil) || err != nil {
		return nil, false
	}

	var cached cachedSchedule
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}

	schedule := &Schedule{
		MasjidID:  masjidID,
		Date:      date,
		Entries:   make(map[Prayer]Entry, len(cached.Entries)),
		UpdatedAt: cached.UpdatedAt,
	}
	for prayer, entry := range cached.Entries {
		var e Entry
		if entry.Adhan != nil {
			at := ClockTime(*entry.Adhan)
			e.Adhan = &at
		}
		if entry.Iqama != nil {
			at := ClockTime(*entry.Iqama)
			e.Iqama = &at
		}
		schedule.Entries[Prayer(prayer)] = e
	}
	return schedule, true
}

func (c *Cache) Set(ctx context.Context, schedule *Schedule) error {
	cached := cachedSchedule{
		Entries:   make(map[string]cachedEntry, len(schedule.Entries)),
		UpdatedAt: schedule.UpdatedAt,
	}
	for prayer, entry := range schedule.Entries {
		cached.Entries[string(prayer)] = cachedEntry{
			Adhan: clockPtr(entry.Adhan),
			Iqama: clockPtr(entry.Iqama),
		}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal cached schedule: %w", err)
	}
	return c.client.Set(ctx, cacheKey(schedule.MasjidID, schedule.Date), raw, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, masjidID id.MasjidID, date Date) error {
	return c.client.Del(ctx, cacheKey(masjidID, date)).Err()
}
