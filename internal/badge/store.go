package badge

import (
	"context"

	id "minar/pkg/domain"
)

type Store interface {
	Create(ctx context.Context, b *Badge) error
	FindByID(ctx context.Context, badgeID id.BadgeID) (*Badge, error)
	FindByToken(ctx context.Context, token string) (*Badge, error)
	Update(ctx context.Context, b *Badge) error
	ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Badge, error)
	PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error
}
