package session

import (
	"context"
	"sync"
	"time"

	id "minar/pkg/domain"
)

type InMemoryLastSeenStore struct {
	mu   sync.RWMutex
	seen map[id.ActorID]time.Time
}

func NewInMemoryLastSeenStore() *InMemoryLastSeenStore {
	return &InMemoryLastSeenStore{seen: make(map[id.ActorID]time.Time)}
}

func (s *InMemoryLastSeenStore) Touch(_ context.Context, actorID id.ActorID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only move forward; concurrent requests may land out of order.
	if existing, ok := s.seen[actorID]; ok && existing.After(at) {
		return nil
	}
	s.seen[actorID] = at
	return nil
}

func (s *InMemoryLastSeenStore) Last(_ context.Context, actorID id.ActorID) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.seen[actorID]
	return at, ok, nil
}
