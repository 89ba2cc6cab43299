package verification

import (
	"context"
	"errors"
	"log/slog"

	"minar/internal/adminlink"
	"minar/internal/confidence"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/platform/sentinel"
	"minar/pkg/requestcontext"
)

// AdminLinks is the slice of the admin link service the approval hook drives.
type AdminLinks interface {
	Get(ctx context.Context, linkID id.AdminLinkID) (*adminlink.Link, error)
	MarkVerified(ctx context.Context, linkID id.AdminLinkID) (*adminlink.Link, error)
}

// ConfidenceEscalator jumps a masjid straight to verified confidence.
type ConfidenceEscalator interface {
	ForceVerified(ctx context.Context, masjidID id.MasjidID) (*confidence.Record, error)
}

type Service struct {
	store      Store
	links      AdminLinks
	confidence ConfidenceEscalator
	trail      *audit.Trail
	logger     *slog.Logger
}

func NewService(store Store, links AdminLinks, confidence ConfidenceEscalator, trail *audit.Trail, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		links:      links,
		confidence: confidence,
		trail:      trail,
		logger:     logger,
	}
}

// Submit files an identity document against an existing admin link.
func (s *Service) Submit(ctx context.Context, linkID id.AdminLinkID, description string) (*Document, error) {
	link, err := s.links.Get(ctx, linkID)
	if err != nil {
		return nil, err
	}

	doc, err := NewDocument(id.NewDocumentID(), linkID, description, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create verification document")
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: link.MasjidID,
		Subject:  doc.ID.String(),
		Action:   string(audit.EventDocumentSubmitted),
	})
	return doc, nil
}

// Review records a staff decision on a pending document. Approval fires the
// verification hook: the admin link becomes identity-verified and the masjid
// jumps straight to verified confidence, bypassing the normal escalation
// ladder. A document can be reviewed exactly once, so the hook cannot fire
// twice for the same submission.
func (s *Service) Review(ctx context.Context, documentID id.DocumentID, approved bool, notes string) (*Document, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Reviewed {
		return nil, dErrors.New(dErrors.CodeConflict, "document has already been reviewed")
	}

	doc.Review(approved, notes, requestcontext.Now(ctx))
	if err := s.store.Update(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update verification document")
	}

	if !approved {
		s.trail.Emit(ctx, audit.Event{
			Subject: doc.ID.String(),
			Action:  string(audit.EventDocumentRejected),
			Reason:  doc.ReviewNotes,
		})
		return doc, nil
	}

	link, err := s.links.MarkVerified(ctx, doc.AdminLinkID)
	if err != nil {
		return nil, err
	}
	if _, err := s.confidence.ForceVerified(ctx, link.MasjidID); err != nil {
		return nil, err
	}

	s.trail.Emit(ctx, audit.Event{
		MasjidID: link.MasjidID,
		Subject:  doc.ID.String(),
		Action:   string(audit.EventDocumentApproved),
	})
	return doc, nil
}

func (s *Service) Get(ctx context.Context, documentID id.DocumentID) (*Document, error) {
	doc, err := s.store.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification document")
	}
	return doc, nil
}

func (s *Service) ListByAdminLink(ctx context.Context, linkID id.AdminLinkID) ([]*Document, error) {
	docs, err := s.store.ListByAdminLink(ctx, linkID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification documents")
	}
	return docs, nil
}

// ListPending returns the staff review queue, oldest submissions first.
func (s *Service) ListPending(ctx context.Context) ([]*Document, error) {
	docs, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending documents")
	}
	return docs, nil
}
