package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	kbRepo "helpcenter/internal/domain/repositories/kb"
)

// TrashRepository implements the TrashRepository interface
type TrashRepository struct {
	store  *Store
	logger *slog.Logger
}

// NewTrashRepository creates a new trash repository
func NewTrashRepository(config *RepositoryConfig) kbRepo.TrashRepository {
	return &TrashRepository{
		store:  config.Store,
		logger: config.Logger,
	}
}

func (r *TrashRepository) List(ctx context.Context) ([]kb.TrashItem, error) {
	unlock := r.store.lock(ctx, false)
	defer unlock()

	out := make([]kb.TrashItem, len(r.store.trash))
	for i, t := range r.store.trash {
		out[i] = t.Clone()
	}
	return out, nil
}

func (r *TrashRepository) Append(ctx context.Context, item kb.TrashItem) error {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	r.store.trash = append(r.store.trash, item.Clone())
	return nil
}

func (r *TrashRepository) Take(ctx context.Context, index int) (*kb.TrashItem, error) {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	if index < 0 || index >= len(r.store.trash) {
		return nil, fmt.Errorf("trash item %d: %w", index, domain.ErrNotFound)
	}
	item := r.store.trash[index]
	r.store.trash = slices.Delete(r.store.trash, index, index+1)
	return &item, nil
}
