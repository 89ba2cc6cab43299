package badge

import (
	"time"

	id "minar/pkg/domain"
)

// Badge certifies a masjid's verified status to external sites. The token is
// the public handle; the ID is internal.
//
// IsRevoked is terminal: it is set only by explicit administrative
// revocation and never cleared. IsActive can be cleared automatically by the
// validity engine but is only set back to true by issuing a new badge.
type Badge struct {
	ID            id.BadgeID
	Token         string
	MasjidID      id.MasjidID
	IssuedBy      id.ActorID
	IssuedAt      time.Time
	ExpiryDate    *time.Time
	IsActive      bool
	IsRevoked     bool
	LastCheckedAt *time.Time
}

// Invalidity reasons reported by the validity engine, used as metric labels
// and audit outcomes.
const (
	ReasonValid                  = "valid"
	ReasonRevoked                = "revoked"
	ReasonInactive               = "inactive"
	ReasonExpired                = "expired"
	ReasonMasjidInactive         = "masjid_inactive"
	ReasonInsufficientConfidence = "insufficient_confidence"
)
