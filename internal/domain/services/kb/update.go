package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// UpdateService is the changelog half of the content store
type UpdateService interface {
	// CreateUpdate publishes a new entry at the top of the feed
	CreateUpdate(ctx context.Context, req *CreateUpdateRequest) (*kb.UpdateEntry, error)

	GetUpdate(ctx context.Context, id string) (*kb.UpdateEntry, error)

	// ListUpdates returns the feed newest first
	ListUpdates(ctx context.Context, includeScheduled bool) ([]kb.UpdateEntry, error)

	LikeUpdate(ctx context.Context, id string) (*kb.UpdateEntry, error)
}

// CreateUpdateRequest represents a changelog entry from the update editor
type CreateUpdateRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"` // Rendered markup
	Emoji       string        `json:"emoji,omitempty"`
	Type        kb.UpdateType `json:"type,omitempty"`
}
