package audit

import (
	"context"
	"time"

	id "minar/pkg/domain"
)

// Event is emitted from domain logic to capture key registry actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	ActorID   string
	MasjidID  id.MasjidID
	Subject   string
	Action    string
	Outcome   string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	// Actor events
	EventActorRegistered AuditEvent = "actor_registered"
	EventAuthFailed      AuditEvent = "auth_failed"

	// Masjid events
	EventMasjidCreated     AuditEvent = "masjid_created"
	EventMasjidUpdated     AuditEvent = "masjid_updated"
	EventMasjidDeactivated AuditEvent = "masjid_deactivated"
	EventMasjidDeleted     AuditEvent = "masjid_deleted"

	// Trust events
	EventSignalRecorded    AuditEvent = "signal_recorded"
	EventConfidenceChanged AuditEvent = "confidence_changed"
	EventConfidenceDecayed AuditEvent = "confidence_decayed"

	// Badge events
	EventBadgeIssued      AuditEvent = "badge_issued"
	EventBadgeRevoked     AuditEvent = "badge_revoked"
	EventBadgeDeactivated AuditEvent = "badge_deactivated"

	// Verification events
	EventDocumentSubmitted AuditEvent = "document_submitted"
	EventDocumentApproved  AuditEvent = "document_approved"
	EventDocumentRejected  AuditEvent = "document_rejected"
	EventAdminLinkCreated  AuditEvent = "admin_link_created"
	EventAdminLinkVerified AuditEvent = "admin_link_verified"
)

// Sink receives audit events. Stores and brokers both implement it so the
// worker can fan out.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store persists audit events and supports the staff query surface.
type Store interface {
	Sink
	ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
