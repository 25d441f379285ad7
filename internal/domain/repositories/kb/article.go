package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// ArticleRepository stores articles in collection order.
type ArticleRepository interface {
	List(ctx context.Context) ([]kb.Article, error)
	// Get returns domain.ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*kb.Article, error)
	// Append adds at the end. An existing ID is a *domain.ConflictError.
	Append(ctx context.Context, article *kb.Article) error
	// Replace overwrites the article with the same ID in place.
	Replace(ctx context.Context, article *kb.Article) error
	// Remove cuts the article out of the collection and returns it.
	Remove(ctx context.Context, id string) (*kb.Article, error)
}
