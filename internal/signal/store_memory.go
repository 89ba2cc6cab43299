package signal

import (
	"context"
	"sort"
	"sync"
	"time"

	id "minar/pkg/domain"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	signals map[id.MasjidID][]*Signal
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{signals: make(map[id.MasjidID][]*Signal)}
}

func (s *InMemoryStore) Save(_ context.Context, sig *Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sig
	s.signals[sig.MasjidID] = append(s.signals[sig.MasjidID], &copied)
	return nil
}

func (s *InMemoryStore) ListByMasjid(_ context.Context, masjidID id.MasjidID) ([]*Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Signal, 0, len(s.signals[masjidID]))
	for _, sig := range s.signals[masjidID] {
		copied := *sig
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) CountDistinctUserActors(_ context.Context, masjidID id.MasjidID, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actors := make(map[id.ActorID]struct{})
	for _, sig := range s.signals[masjidID] {
		if sig.Source != SourceUser || sig.ActorID == nil {
			continue
		}
		if sig.CreatedAt.Before(since) {
			continue
		}
		actors[*sig.ActorID] = struct{}{}
	}
	return len(actors), nil
}

func (s *InMemoryStore) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.signals, masjidID)
	return nil
}
