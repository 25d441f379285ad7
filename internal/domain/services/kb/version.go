package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// VersionService exposes an article's prior content snapshots
type VersionService interface {
	// ListVersions returns snapshots oldest first
	ListVersions(ctx context.Context, articleID string) ([]string, error)

	// RestoreVersion makes snapshot index current and appends the replaced content
	RestoreVersion(ctx context.Context, articleID string, index int) (*kb.Article, error)
}
