package verification

import (
	"context"
	"sort"
	"sync"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[id.DocumentID]*Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[id.DocumentID]*Document)}
}

func (s *InMemoryStore) Create(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = copyDocument(doc)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, documentID id.DocumentID) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[documentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *InMemoryStore) Update(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.docs[doc.ID] = copyDocument(doc)
	return nil
}

func (s *InMemoryStore) ListByAdminLink(_ context.Context, linkID id.AdminLinkID) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Document
	for _, doc := range s.docs {
		if doc.AdminLinkID == linkID {
			out = append(out, copyDocument(doc))
		}
	}
	sortBySubmission(out)
	return out, nil
}

func (s *InMemoryStore) ListPending(_ context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Document
	for _, doc := range s.docs {
		if !doc.Reviewed {
			out = append(out, copyDocument(doc))
		}
	}
	sortBySubmission(out)
	return out, nil
}

// sortBySubmission orders oldest first so review queues are FIFO.
func sortBySubmission(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SubmittedAt.Before(docs[j].SubmittedAt)
	})
}

func copyDocument(doc *Document) *Document {
	copied := *doc
	if doc.ReviewedAt != nil {
		at := *doc.ReviewedAt
		copied.ReviewedAt = &at
	}
	return &copied
}
