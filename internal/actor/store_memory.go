package actor

import (
	"context"
	"strings"
	"sync"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[id.ActorID]*Actor
	byEmail map[string]id.ActorID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[id.ActorID]*Actor),
		byEmail: make(map[string]id.ActorID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, actor *Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(actor.Email)
	if _, exists := s.byEmail[email]; exists {
		return sentinel.ErrConflict
	}

	copied := *actor
	s.byID[actor.ID] = &copied
	s.byEmail[email] = actor.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, actorID id.ActorID) (*Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actor, ok := s.byID[actorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *actor
	return &copied, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actorID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.byID[actorID]
	return &copied, nil
}
