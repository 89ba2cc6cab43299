package adminlink

import (
	"context"

	id "minar/pkg/domain"
)

type Store interface {
	Create(ctx context.Context, link *Link) error
	FindByID(ctx context.Context, linkID id.AdminLinkID) (*Link, error)
	ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Link, error)
	// ListVerifiedActors returns the actors holding a verified-identity link
	// to the masjid; the confidence inactivity sweep consumes it.
	ListVerifiedActors(ctx context.Context, masjidID id.MasjidID) ([]id.ActorID, error)
	Update(ctx context.Context, link *Link) error
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}
