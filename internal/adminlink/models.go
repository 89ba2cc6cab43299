package adminlink

import (
	"time"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
)

// Link associates an actor with a masjid they manage. VerifiedIdentity is set
// only by the document approval hook; it is what the admin-inactivity sweep
// keys on.
type Link struct {
	ID               id.AdminLinkID
	ActorID          id.ActorID
	MasjidID         id.MasjidID
	VerifiedIdentity bool
	VerifiedAt       *time.Time
	CreatedAt        time.Time
}

func NewLink(linkID id.AdminLinkID, actorID id.ActorID, masjidID id.MasjidID, now time.Time) (*Link, error) {
	if actorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "actor ID is required")
	}
	if masjidID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "masjid ID is required")
	}
	return &Link{
		ID:        linkID,
		ActorID:   actorID,
		MasjidID:  masjidID,
		CreatedAt: now,
	}, nil
}

// MarkVerified stamps the identity verification. Verification is sticky; a
// repeat approval just refreshes the timestamp.
func (l *Link) MarkVerified(at time.Time) {
	l.VerifiedIdentity = true
	l.VerifiedAt = &at
}
