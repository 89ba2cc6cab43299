package confidence

import "time"

// Pure transition rules. Services apply them inside a transaction; keeping
// them free of I/O makes the whole trust ladder testable with plain tables.

// EscalateForAdmin returns the level after an ADMIN-sourced confirmation:
// unconfirmed and community listings move to admin-confirmed, anything
// already admin-confirmed moves to (or stays at) verified.
func EscalateForAdmin(current Level) Level {
	if current < LevelAdmin {
		return LevelAdmin
	}
	return LevelVerified
}

// CommunityEligible reports whether community counting may raise the level.
// Community confirmation never downgrades or re-confirms a higher level.
func CommunityEligible(current Level, distinctActors int) bool {
	return current < LevelCommunity && distinctActors >= MinCommunitySignals
}

// ShouldDecay is the single-step decay gate. Unconfirmed records and records
// whose decay date has not arrived are left alone.
func ShouldDecay(r *Record, now time.Time) bool {
	if r.Level == LevelNone {
		return false
	}
	if r.DecayDate == nil {
		return false
	}
	return !now.Before(*r.DecayDate)
}

// DecayedLevel returns the level one step down, floored at LevelNone.
func DecayedLevel(current Level) Level {
	if current <= LevelNone {
		return LevelNone
	}
	return current - 1
}
