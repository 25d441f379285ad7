package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// TrashRepository is an append-only list addressed by index.
type TrashRepository interface {
	List(ctx context.Context) ([]kb.TrashItem, error)
	Append(ctx context.Context, item kb.TrashItem) error
	// Take removes and returns the item at index (domain.ErrNotFound if out of range).
	Take(ctx context.Context, index int) (*kb.TrashItem, error)
}
