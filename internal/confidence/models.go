package confidence

import (
	"time"

	id "minar/pkg/domain"
)

// Level is how much trust the registry places in a masjid listing.
type Level int

const (
	// LevelNone is the default for a listing nobody has confirmed.
	LevelNone Level = 0
	// LevelCommunity means enough distinct community members reported
	// activity within the recent window.
	LevelCommunity Level = 1
	// LevelAdmin means a masjid admin has confirmed the listing.
	LevelAdmin Level = 2
	// LevelVerified means the admin's identity passed document review. Only
	// the verification approval hook assigns it.
	LevelVerified Level = 3
)

// DecayDays is the per-level lifetime of a confirmation. Higher trust decays
// faster because its claims are stronger.
var DecayDays = map[Level]int{
	LevelCommunity: 365,
	LevelAdmin:     180,
	LevelVerified:  90,
}

// MinCommunitySignals is how many distinct actors must report USER signals
// inside the window before community confirmation applies.
const MinCommunitySignals = 3

// CommunityWindowDays is the trailing window for community counting.
const CommunityWindowDays = 30

// AdminInactivityDays is how long a verified admin may stay silent before
// the registry stops asserting identity verification.
const AdminInactivityDays = 90

// CalculateDecayDate returns when a confirmation at the given level expires,
// or nil for levels that do not decay.
func CalculateDecayDate(level Level, now time.Time) *time.Time {
	days, ok := DecayDays[level]
	if !ok {
		return nil
	}
	at := now.AddDate(0, 0, days)
	return &at
}

// Record is the confidence state of a single masjid, one per masjid.
// Invariant: DecayDate is nil exactly when Level is LevelNone.
type Record struct {
	MasjidID             id.MasjidID
	Level                Level
	LastConfirmationDate time.Time
	DecayDate            *time.Time
}

// NewRecord returns the default unconfirmed record for a masjid.
func NewRecord(masjidID id.MasjidID, now time.Time) *Record {
	return &Record{
		MasjidID:             masjidID,
		Level:                LevelNone,
		LastConfirmationDate: now,
	}
}

// SetLevel moves the record to a level and recomputes its decay date.
func (r *Record) SetLevel(level Level, now time.Time) {
	r.Level = level
	r.LastConfirmationDate = now
	r.DecayDate = CalculateDecayDate(level, now)
}
