package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// UpdateRepository stores changelog entries newest first.
type UpdateRepository interface {
	List(ctx context.Context) ([]kb.UpdateEntry, error)
	Get(ctx context.Context, id string) (*kb.UpdateEntry, error)
	// Prepend adds at the front. An existing ID is a *domain.ConflictError.
	Prepend(ctx context.Context, update *kb.UpdateEntry) error
	Replace(ctx context.Context, update *kb.UpdateEntry) error
	Remove(ctx context.Context, id string) (*kb.UpdateEntry, error)
}
