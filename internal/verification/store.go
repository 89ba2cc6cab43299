package verification

import (
	"context"

	id "minar/pkg/domain"
)

type Store interface {
	Create(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, documentID id.DocumentID) (*Document, error)
	Update(ctx context.Context, doc *Document) error
	ListByAdminLink(ctx context.Context, linkID id.AdminLinkID) ([]*Document, error)
	ListPending(ctx context.Context) ([]*Document, error)
}
