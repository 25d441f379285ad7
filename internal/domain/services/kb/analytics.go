package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// AnalyticsService reports per-article feedback
type AnalyticsService interface {
	ArticleStats(ctx context.Context) ([]kb.ArticleStats, error)
}
