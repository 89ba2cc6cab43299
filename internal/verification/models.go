package verification

import (
	"strings"
	"time"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
)

// Document is an identity proof submitted against an admin link. Review is
// one-shot: once Reviewed is set the outcome is final and a fresh submission
// is needed for another attempt.
type Document struct {
	ID          id.DocumentID
	AdminLinkID id.AdminLinkID
	Description string
	Reviewed    bool
	Approved    bool
	ReviewNotes string
	SubmittedAt time.Time
	ReviewedAt  *time.Time
}

func NewDocument(documentID id.DocumentID, linkID id.AdminLinkID, description string, now time.Time) (*Document, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "document description is required")
	}
	if linkID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "admin link ID is required")
	}
	return &Document{
		ID:          documentID,
		AdminLinkID: linkID,
		Description: description,
		SubmittedAt: now,
	}, nil
}

func (d *Document) Review(approved bool, notes string, at time.Time) {
	d.Reviewed = true
	d.Approved = approved
	d.ReviewNotes = strings.TrimSpace(notes)
	d.ReviewedAt = &at
}
