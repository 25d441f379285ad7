package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// TrashService moves content between the collections and the trash.
// Callers are responsible for asking for confirmation first.
type TrashService interface {
	TrashArticle(ctx context.Context, id string) (*kb.TrashItem, error)
	TrashUpdate(ctx context.Context, id string) (*kb.TrashItem, error)
	ListTrash(ctx context.Context) ([]kb.TrashItem, error)

	// Restore puts articles back at the end of the collection and updates at
	// the front of the feed
	Restore(ctx context.Context, index int) (*kb.TrashItem, error)

	// Purge deletes the item permanently
	Purge(ctx context.Context, index int) (*kb.TrashItem, error)
}
