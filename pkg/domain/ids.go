// Package domain defines typed identifiers shared across the registry.
// Each entity gets its own UUID-backed type so a MasjidID can never be
// passed where an ActorID is expected; the compiler enforces it.
package domain

import (
	"github.com/google/uuid"

	dErrors "minar/pkg/domain-errors"
)

type (
	// ActorID identifies a user, masjid admin, or staff account.
	ActorID uuid.UUID

	// MasjidID identifies a masjid in the directory.
	MasjidID uuid.UUID

	// SignalID identifies an activity signal.
	SignalID uuid.UUID

	// BadgeID identifies an issued verification badge.
	BadgeID uuid.UUID

	// AdminLinkID identifies an actor-masjid administration link.
	AdminLinkID uuid.UUID

	// DocumentID identifies a verification document.
	DocumentID uuid.UUID
)

// New* constructors mint random IDs for newly created entities.

func NewActorID() ActorID         { return ActorID(uuid.New()) }
func NewMasjidID() MasjidID       { return MasjidID(uuid.New()) }
func NewSignalID() SignalID       { return SignalID(uuid.New()) }
func NewBadgeID() BadgeID         { return BadgeID(uuid.New()) }
func NewAdminLinkID() AdminLinkID { return AdminLinkID(uuid.New()) }
func NewDocumentID() DocumentID   { return DocumentID(uuid.New()) }

func (id ActorID) String() string     { return uuid.UUID(id).String() }
func (id MasjidID) String() string    { return uuid.UUID(id).String() }
func (id SignalID) String() string    { return uuid.UUID(id).String() }
func (id BadgeID) String() string     { return uuid.UUID(id).String() }
func (id AdminLinkID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) String() string  { return uuid.UUID(id).String() }

func (id ActorID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id MasjidID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SignalID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id BadgeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id AdminLinkID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs. Applied at trust boundaries (request parsing, store reads).
func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return parsed, nil
}

func ParseActorID(raw string) (ActorID, error) {
	parsed, err := parseUUID(raw)
	return ActorID(parsed), err
}

func ParseMasjidID(raw string) (MasjidID, error) {
	parsed, err := parseUUID(raw)
	return MasjidID(parsed), err
}

func ParseSignalID(raw string) (SignalID, error) {
	parsed, err := parseUUID(raw)
	return SignalID(parsed), err
}

func ParseBadgeID(raw string) (BadgeID, error) {
	parsed, err := parseUUID(raw)
	return BadgeID(parsed), err
}

func ParseAdminLinkID(raw string) (AdminLinkID, error) {
	parsed, err := parseUUID(raw)
	return AdminLinkID(parsed), err
}

func ParseDocumentID(raw string) (DocumentID, error) {
	parsed, err := parseUUID(raw)
	return DocumentID(parsed), err
}
