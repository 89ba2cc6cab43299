package adminlink

import (
	"context"
	"sync"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	links map[id.AdminLinkID]*Link
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{links: make(map[id.AdminLinkID]*Link)}
}

func (s *InMemoryStore) Create(_ context.Context, link *Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.links {
		if existing.ActorID == link.ActorID && existing.MasjidID == link.MasjidID {
			return sentinel.ErrConflict
		}
	}
	s.links[link.ID] = copyLink(link)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, linkID id.AdminLinkID) (*Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[linkID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyLink(link), nil
}

func (s *InMemoryStore) ListByMasjid(_ context.Context, masjidID id.MasjidID) ([]*Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Link
	for _, link := range s.links {
		if link.MasjidID == masjidID {
			out = append(out, copyLink(link))
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListVerifiedActors(_ context.Context, masjidID id.MasjidID) ([]id.ActorID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []id.ActorID
	for _, link := range s.links {
		if link.MasjidID == masjidID && link.VerifiedIdentity {
			out = append(out, link.ActorID)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, link *Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[link.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.links[link.ID] = copyLink(link)
	return nil
}

func (s *InMemoryStore) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for linkID, link := range s.links {
		if link.MasjidID == masjidID {
			delete(s.links, linkID)
		}
	}
	return nil
}

func copyLink(link *Link) *Link {
	copied := *link
	if link.VerifiedAt != nil {
		at := *link.VerifiedAt
		copied.VerifiedAt = &at
	}
	return &copied
}
