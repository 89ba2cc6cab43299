package favourite

import (
	"context"
	"sort"
	"sync"

	id "minar/pkg/domain"
)

type favKey struct {
	actorID  id.ActorID
	masjidID id.MasjidID
}

type InMemoryStore struct {
	mu   sync.RWMutex
	favs map[favKey]*Favourite
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{favs: make(map[favKey]*Favourite)}
}

func (s *InMemoryStore) Add(_ context.Context, fav *Favourite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := favKey{actorID: fav.ActorID, masjidID: fav.MasjidID}
	if _, exists := s.favs[key]; exists {
		return nil
	}
	copied := *fav
	s.favs[key] = &copied
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, actorID id.ActorID, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favs, favKey{actorID: actorID, masjidID: masjidID})
	return nil
}

func (s *InMemoryStore) ListByActor(_ context.Context, actorID id.ActorID) ([]*Favourite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Favourite
	for key, fav := range s.favs {
		if key.actorID == actorID {
			copied := *fav
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.favs {
		if key.masjidID == masjidID {
			delete(s.favs, key)
		}
	}
	return nil
}
