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

// ArticleRepository implements the ArticleRepository interface
type ArticleRepository struct {
	store  *Store
	logger *slog.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(config *RepositoryConfig) kbRepo.ArticleRepository {
	return &ArticleRepository{
		store:  config.Store,
		logger: config.Logger,
	}
}

func (r *ArticleRepository) List(ctx context.Context) ([]kb.Article, error) {
	unlock := r.store.lock(ctx, false)
	defer unlock()

	out := make([]kb.Article, len(r.store.articles))
	for i, a := range r.store.articles {
		out[i] = a.Clone()
	}
	return out, nil
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*kb.Article, error) {
	unlock := r.store.lock(ctx, false)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	a := r.store.articles[i].Clone()
	return &a, nil
}

func (r *ArticleRepository) Append(ctx context.Context, article *kb.Article) error {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	if r.indexOf(article.ID) >= 0 {
		return &domain.ConflictError{
			ResourceType: "article",
			ResourceID:   article.ID,
		}
	}
	r.store.articles = append(r.store.articles, article.Clone())
	r.logger.Debug("article appended", "id", article.ID, "count", len(r.store.articles))
	return nil
}

func (r *ArticleRepository) Replace(ctx context.Context, article *kb.Article) error {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	i := r.indexOf(article.ID)
	if i < 0 {
		return fmt.Errorf("article %s: %w", article.ID, domain.ErrNotFound)
	}
	r.store.articles[i] = article.Clone()
	return nil
}

func (r *ArticleRepository) Remove(ctx context.Context, id string) (*kb.Article, error) {
	unlock := r.store.lock(ctx, true)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	removed := r.store.articles[i]
	r.store.articles = slices.Delete(r.store.articles, i, i+1)
	return &removed, nil
}

// indexOf expects the caller to hold the lock.
func (r *ArticleRepository) indexOf(id string) int {
	return slices.IndexFunc(r.store.articles, func(a kb.Article) bool { return a.ID == id })
}
