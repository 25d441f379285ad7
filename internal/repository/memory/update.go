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

// UpdateRepository implements the UpdateRepository interface
type UpdateRepository struct {
	store  *Store
	logger *slog.Logger
}

// NewUpdateRepository creates a new changelog repository
func NewUpdateRepository(config *RepositoryConfig) kbRepo.UpdateRepository {
	return &UpdateRepository{
		store:  config.Store,
		logger: config.Logger,
	}
}

func (r *UpdateRepository) List(ctx context.Context) ([]kb.UpdateEntry, error) {
	unlock := r.store.lock(ctx, false)
	defer unlock()
	return slices.Clone(r.store.updates), nil
}

func (r *UpdateRepository) Get(ctx context.Context, id string) (*kb.UpdateEntry, error) {
	unlock := r.store.lock(ctx, false)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("update %s: %w", id, domain.ErrNotFound)
	}
	u := r.store.updates[i]
	return &u, nil
}

func (r *UpdateRepository) Prepend(ctx context.Context, update *kb.UpdateEntry) error {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	if r.indexOf(update.ID) >= 0 {
		return &domain.ConflictError{
			ResourceType: "update",
			ResourceID:   update.ID,
		}
	}
	r.store.updates = slices.Insert(r.store.updates, 0, *update)
	r.logger.Debug("update prepended", "id", update.ID, "count", len(r.store.updates))
	return nil
}

func (r *UpdateRepository) Replace(ctx context.Context, update *kb.UpdateEntry) error {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	i := r.indexOf(update.ID)
	if i < 0 {
		return fmt.Errorf("update %s: %w", update.ID, domain.ErrNotFound)
	}
	r.store.updates[i] = *update
	return nil
}

func (r *UpdateRepository) Remove(ctx context.Context, id string) (*kb.UpdateEntry, error) {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("update %s: %w", id, domain.ErrNotFound)
	}
	removed := r.store.updates[i]
	r.store.updates = slices.Delete(r.store.updates, i, i+1)
	return &removed, nil
}

func (r *UpdateRepository) indexOf(id string) int {
	return slices.IndexFunc(r.store.updates, func(u kb.UpdateEntry) bool { return u.ID == id })
}
