package kb

import (
	"context"
	"time"

	"helpcenter/internal/domain/models/kb"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// ScheduleService gates visibility by publish date
type ScheduleService interface {
	Now() time.Time
	IsPublished(article *kb.Article) bool

	// ListScheduled returns articles whose publish date is still in the future
	ListScheduled(ctx context.Context) ([]kb.Article, error)
}
