package kb

import (
	"context"
	"time"

	"helpcenter/internal/domain/models/kb"
)

// ArticleService is the article half of the content store
type ArticleService interface {
	// SaveArticle creates an article when req.ID is empty, otherwise replaces
	// it in place and pushes the previous content onto its versions.
	SaveArticle(ctx context.Context, req *SaveArticleRequest) (*kb.Article, error)

	GetArticle(ctx context.Context, id string) (*kb.Article, error)

	// ListArticles returns every article, scheduled ones included, in collection order
	ListArticles(ctx context.Context) ([]kb.Article, error)

	// SearchArticles filters the visible set with a case-insensitive substring match
	SearchArticles(ctx context.Context, req *SearchArticlesRequest) ([]kb.Article, error)

	// PublishNow moves the publish timestamp to the current time
	PublishNow(ctx context.Context, id string) (*kb.Article, error)

	// RecordFeedback increments the helpful or unhelpful counter
	RecordFeedback(ctx context.Context, id string, helpful bool) (*kb.Article, error)
}

// SaveArticleRequest represents an article save from the editor
type SaveArticleRequest struct {
	ID          string    `json:"id,omitempty"` // Empty creates a new article
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Category    string    `json:"category"`
	Content     string    `json:"content"` // Rendered markup
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
}

// SearchArticlesRequest represents a sidebar/search query
type SearchArticlesRequest struct {
	Query string `json:"query"`
	// IncludeScheduled widens the visible set to future-dated articles (admin mode)
	IncludeScheduled bool `json:"include_scheduled"`
}
