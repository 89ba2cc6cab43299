package signal

import (
	"strings"
	"time"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
)

// Type describes what a signal reports about a masjid.
type Type string

const (
	TypePrayed      Type = "PRAYED"
	TypeJummah      Type = "JUMMAH"
	TypeActive      Type = "ACTIVE"
	TypeAdminVerify Type = "ADMIN_VERIFY"
)

func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypePrayed, TypeJummah, TypeActive, TypeAdminVerify:
		return Type(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown signal type")
	}
}

// Source identifies who reported the signal. The source, not the type, is
// what drives confidence escalation.
type Source string

const (
	SourceUser   Source = "USER"
	SourceAdmin  Source = "ADMIN"
	SourceSystem Source = "SYSTEM"
)

func ParseSource(raw string) (Source, error) {
	switch Source(raw) {
	case SourceUser, SourceAdmin, SourceSystem:
		return Source(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown signal source")
	}
}

// Signal is an immutable activity report. ActorID is nil for anonymous or
// system-generated signals; community counting only considers distinct
// non-nil actors.
type Signal struct {
	ID          id.SignalID
	MasjidID    id.MasjidID
	ActorID     *id.ActorID
	Type        Type
	Source      Source
	Description string
	CreatedAt   time.Time
}

func NewSignal(signalID id.SignalID, masjidID id.MasjidID, actorID *id.ActorID, sigType Type, source Source, description string, now time.Time) (*Signal, error) {
	if masjidID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "masjid ID is required")
	}
	if _, err := ParseType(string(sigType)); err != nil {
		return nil, err
	}
	if _, err := ParseSource(string(source)); err != nil {
		return nil, err
	}
	if actorID != nil && actorID.IsNil() {
		actorID = nil
	}

	return &Signal{
		ID:          signalID,
		MasjidID:    masjidID,
		ActorID:     actorID,
		Type:        sigType,
		Source:      source,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
	}, nil
}
