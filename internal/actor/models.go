package actor

import (
	"strings"
	"time"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	emailutil "minar/pkg/email"
)

// Role determines what an actor may do. Masjid admins manage their own
// masjids; staff review verification documents and run registry-wide sweeps.
type Role string

const (
	RoleUser        Role = "user"
	RoleMasjidAdmin Role = "masjid_admin"
	RoleStaff       Role = "staff"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleMasjidAdmin, RoleStaff:
		return Role(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
}

// Actor is any authenticated principal: a community member reporting prayer
// signals, a masjid admin, or registry staff.
type Actor struct {
	ID           id.ActorID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewActor validates inputs and constructs an Actor. The password hash must
// already be computed by the caller.
func NewActor(actorID id.ActorID, email, displayName, passwordHash string, role Role, now time.Time) (*Actor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required")
	}
	if displayName == "" {
		// Fall back to a name derived from the email's local part.
		displayName = emailutil.DeriveNameFromEmail(email)
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password hash is required")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	return &Actor{
		ID:           actorID,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
	}, nil
}
