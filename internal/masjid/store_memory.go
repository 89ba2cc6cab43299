package masjid

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	masjids map[id.MasjidID]*Masjid
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{masjids: make(map[id.MasjidID]*Masjid)}
}

func (s *InMemoryStore) Create(_ context.Context, m *Masjid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.masjids[m.ID]; exists {
		return sentinel.ErrConflict
	}
	copied := *m
	s.masjids[m.ID] = &copied
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, masjidID id.MasjidID) (*Masjid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.masjids[masjidID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *InMemoryStore) Update(_ context.Context, m *Masjid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.masjids[m.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *m
	s.masjids[m.ID] = &copied
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.masjids[masjidID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.masjids, masjidID)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Masjid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.NameQuery))
	country := strings.ToUpper(strings.TrimSpace(filter.CountryCode))

	var out []*Masjid
	for _, m := range s.masjids {
		if filter.ActiveOnly && !m.IsActive {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(m.Name), query) {
			continue
		}
		if country != "" && m.Location.CountryCode != country {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
