package kb

import (
	"context"
	"log/slog"

	"helpcenter/internal/domain/models/kb"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	"helpcenter/internal/domain/services"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	articleRepo     kbRepo.ArticleRepository
	clock           kbSvc.Clock
	contentAnalyzer services.ContentAnalyzer
	logger          *slog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	articleRepo kbRepo.ArticleRepository,
	clock kbSvc.Clock,
	contentAnalyzer services.ContentAnalyzer,
	logger *slog.Logger,
) kbSvc.AnalyticsService {
	return &analyticsService{
		articleRepo:     articleRepo,
		clock:           clock,
		contentAnalyzer: contentAnalyzer,
		logger:          logger,
	}
}

// ArticleStats returns one row per article in collection order, scheduled
// articles included.
func (s *analyticsService) ArticleStats(ctx context.Context) ([]kb.ArticleStats, error) {
	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	stats := make([]kb.ArticleStats, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		row := kb.ArticleStats{
			ID:             a.ID,
			Title:          a.Title,
			Category:       a.Category,
			HelpfulCount:   a.HelpfulCount,
			UnhelpfulCount: a.UnhelpfulCount,
			WordCount:      s.contentAnalyzer.CountWords(a.Content),
			VersionCount:   len(a.Versions),
			Published:      a.IsPublishedAt(now),
		}
		if total := a.HelpfulCount + a.UnhelpfulCount; total > 0 {
			row.HelpfulRatio = float64(a.HelpfulCount) / float64(total)
		}
		stats = append(stats, row)
	}

	s.logger.Debug("article stats computed", "articles", len(stats))
	return stats, nil
}
