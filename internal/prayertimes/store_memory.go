package prayertimes

import (
	"context"
	"sync"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type scheduleKey struct {
	masjidID id.MasjidID
	date     Date
}

type InMemoryStore struct {
	mu        sync.RWMutex
	schedules map[scheduleKey]*Schedule
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{schedules: make(map[scheduleKey]*Schedule)}
}

func (s *InMemoryStore) Upsert(_ context.Context, schedule *Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[scheduleKey{schedule.MasjidID, schedule.Date}] = copySchedule(schedule)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, masjidID id.MasjidID, date Date) (*Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[scheduleKey{masjidID, date}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copySchedule(schedule), nil
}

func (s *InMemoryStore) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.schedules {
		if key.masjidID == masjidID {
			delete(s.schedules, key)
		}
	}
	return nil
}

func copySchedule(schedule *Schedule) *Schedule {
	copied := *schedule
	copied.Entries = make(map[Prayer]Entry, len(schedule.Entries))
	for prayer, entry := range schedule.Entries {
		copied.Entries[prayer] = entry
	}
	return &copied
}
