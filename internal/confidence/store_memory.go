package confidence

import (
	"context"
	"sync"
	"time"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.MasjidID]*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.MasjidID]*Record)}
}

func (s *InMemoryStore) Get(_ context.Context, masjidID id.MasjidID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[masjidID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyRecord(record), nil
}

func (s *InMemoryStore) Save(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.MasjidID] = copyRecord(record)
	return nil
}

func (s *InMemoryStore) ListOverdue(_ context.Context, now time.Time) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, record := range s.records {
		if record.Level == LevelNone || record.DecayDate == nil {
			continue
		}
		if record.DecayDate.After(now) {
			continue
		}
		out = append(out, copyRecord(record))
	}
	return out, nil
}

func (s *InMemoryStore) ListByLevel(_ context.Context, level Level) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, record := range s.records {
		if record.Level == level {
			out = append(out, copyRecord(record))
		}
	}
	return out, nil
}

func (s *InMemoryStore) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, masjidID)
	return nil
}

func copyRecord(record *Record) *Record {
	copied := *record
	if record.DecayDate != nil {
		at := *record.DecayDate
		copied.DecayDate = &at
	}
	return &copied
}
