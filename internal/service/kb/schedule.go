package kb

import (
	"context"
	"time"

	"helpcenter/internal/domain/models/kb"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// SystemClock reads the wall clock.
var SystemClock kbSvc.Clock = kbSvc.ClockFunc(time.Now)

// scheduleService implements the ScheduleService interface
type scheduleService struct {
	articleRepo kbRepo.ArticleRepository
	clock       kbSvc.Clock
}

// NewScheduleService creates a new schedule service
func NewScheduleService(articleRepo kbRepo.ArticleRepository, clock kbSvc.Clock) kbSvc.ScheduleService {
	return &scheduleService{
		articleRepo: articleRepo,
		clock:       clock,
	}
}

func (s *scheduleService) Now() time.Time {
	return s.clock.Now()
}

// IsPublished holds when the publish timestamp is not after now.
func (s *scheduleService) IsPublished(article *kb.Article) bool {
	return article.IsPublishedAt(s.clock.Now())
}

func (s *scheduleService) ListScheduled(ctx context.Context) ([]kb.Article, error) {
	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	scheduled := make([]kb.Article, 0)
	for i := range articles {
		if !articles[i].IsPublishedAt(now) {
			scheduled = append(scheduled, articles[i])
		}
	}
	return scheduled, nil
}
