package badge

import (
	"context"
	"sync"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[id.BadgeID]*Badge
	byToken map[string]id.BadgeID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[id.BadgeID]*Badge),
		byToken: make(map[string]id.BadgeID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, b *Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byToken[b.Token]; exists {
		return sentinel.ErrConflict
	}
	s.byID[b.ID] = copyBadge(b)
	s.byToken[b.Token] = b.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, badgeID id.BadgeID) (*Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[badgeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyBadge(b), nil
}

func (s *InMemoryStore) FindByToken(_ context.Context, token string) (*Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	badgeID, ok := s.byToken[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyBadge(s.byID[badgeID]), nil
}

func (s *InMemoryStore) Update(_ context.Context, b *Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[b.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[b.ID] = copyBadge(b)
	return nil
}

func (s *InMemoryStore) ListByMasjid(_ context.Context, masjidID id.MasjidID) ([]*Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Badge
	for _, b := range s.byID {
		if b.MasjidID == masjidID {
			out = append(out, copyBadge(b))
		}
	}
	return out, nil
}

func (s *InMemoryStore) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for badgeID, b := range s.byID {
		if b.MasjidID == masjidID {
			delete(s.byToken, b.Token)
			delete(s.byID, badgeID)
		}
	}
	return nil
}

func copyBadge(b *Badge) *Badge {
	copied := *b
	if b.ExpiryDate != nil {
		at := *b.ExpiryDate
		copied.ExpiryDate = &at
	}
	if b.LastCheckedAt != nil {
		at := *b.LastCheckedAt
		copied.LastCheckedAt = &at
	}
	return &copied
}
