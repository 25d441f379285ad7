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

// VocabularyRepository implements the VocabularyRepository interface
type VocabularyRepository struct {
	store  *Store
	logger *slog.Logger
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(config *RepositoryConfig) kbRepo.VocabularyRepository {
	return &VocabularyRepository{
		store:  config.Store,
		logger: config.Logger,
	}
}

func (r *VocabularyRepository) List(ctx context.Context, kind kb.VocabularyKind) ([]string, error) {
	unlock := r.store.lock(ctx, false)
	defer unlock()

	terms, err := r.terms(kind)
	if err != nil {
		return nil, err
	}
	return slices.Clone(*terms), nil
}

func (r *VocabularyRepository) Add(ctx context.Context, kind kb.VocabularyKind, term string) (bool, error) {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	terms, err := r.terms(kind)
	if err != nil {
		return false, err
	}
	if slices.Contains(*terms, term) {
		return false, nil
	}
	*terms = append(*terms, term)
	return true, nil
}

func (r *VocabularyRepository) terms(kind kb.VocabularyKind) (*[]string, error) {
	switch kind {
	case kb.VocabularyCategories:
		return &r.store.categories, nil
	case kb.VocabularyTags:
		return &r.store.tags, nil
	}
	return nil, fmt.Errorf("unknown vocabulary %q: %w", kind, domain.ErrValidation)
}
