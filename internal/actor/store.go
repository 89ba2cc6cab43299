package actor

import (
	"context"

	id "minar/pkg/domain"
)

// Store implementations return sentinel errors; the service layer translates
// them into coded domain errors.
type Store interface {
	Create(ctx context.Context, actor *Actor) error
	FindByID(ctx context.Context, actorID id.ActorID) (*Actor, error)
	FindByEmail(ctx context.Context, email string) (*Actor, error)
}
