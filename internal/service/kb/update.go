package kb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
)

const (
	DefaultEmoji      = "✨"
	DefaultUpdateType = kb.UpdateTypeFeature
)

// updateService implements the UpdateService interface
type updateService struct {
	updateRepo kbRepo.UpdateRepository
	clock      kbSvc.Clock
	logger     *slog.Logger
}

// NewUpdateService creates a new update service
func NewUpdateService(updateRepo kbRepo.UpdateRepository, clock kbSvc.Clock, logger *slog.Logger) kbSvc.UpdateService {
	return &updateService{
		updateRepo: updateRepo,
		clock:      clock,
		logger:     logger,
	}
}

// CreateUpdate publishes immediately and puts the entry at the top of the feed.
func (s *updateService) CreateUpdate(ctx context.Context, req *kbSvc.CreateUpdateRequest) (*kb.UpdateEntry, error) {
	if req.Emoji == "" {
		req.Emoji = DefaultEmoji
	}
	if req.Type == "" {
		req.Type = DefaultUpdateType
	}
	if err := validateCreateUpdate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := s.clock.Now()
	update := &kb.UpdateEntry{
		ID:          uuid.NewString(),
		Date:        FormatRussianDate(now),
		PublishedAt: now,
		Title:       req.Title,
		Description: req.Description,
		Emoji:       req.Emoji,
		Type:        req.Type,
	}
	if err := s.updateRepo.Prepend(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Info("update created",
		"id", update.ID,
		"title", update.Title,
		"type", update.Type,
	)
	return update, nil
}

func (s *updateService) GetUpdate(ctx context.Context, id string) (*kb.UpdateEntry, error) {
	return s.updateRepo.Get(ctx, id)
}

func (s *updateService) ListUpdates(ctx context.Context, includeScheduled bool) ([]kb.UpdateEntry, error) {
	updates, err := s.updateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if includeScheduled {
		return updates, nil
	}

	now := s.clock.Now()
	visible := make([]kb.UpdateEntry, 0, len(updates))
	for i := range updates {
		if updates[i].IsPublishedAt(now) {
			visible = append(visible, updates[i])
		}
	}
	return visible, nil
}

func (s *updateService) LikeUpdate(ctx context.Context, id string) (*kb.UpdateEntry, error) {
	update, err := s.updateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Likes++
	if err := s.updateRepo.Replace(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Debug("update liked", "id", id, "likes", update.Likes)
	return update, nil
}
