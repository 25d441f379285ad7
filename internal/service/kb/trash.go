package kb

import (
	"context"
	"fmt"
	"log/slog"

	"helpcenter/internal/domain/models/kb"
	"helpcenter/internal/domain/repositories"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// trashService implements the TrashService interface
type trashService struct {
	articleRepo kbRepo.ArticleRepository
	updateRepo  kbRepo.UpdateRepository
	trashRepo   kbRepo.TrashRepository
	txManager   repositories.TransactionManager
	clock       kbSvc.Clock
	logger      *slog.Logger
}

// NewTrashService creates a new trash service
func NewTrashService(
	articleRepo kbRepo.ArticleRepository,
	updateRepo kbRepo.UpdateRepository,
	trashRepo kbRepo.TrashRepository,
	txManager repositories.TransactionManager,
	clock kbSvc.Clock,
	logger *slog.Logger,
) kbSvc.TrashService {
	return &trashService{
		articleRepo: articleRepo,
		updateRepo:  updateRepo,
		trashRepo:   trashRepo,
		txManager:   txManager,
		clock:       clock,
		logger:      logger,
	}
}

func (s *trashService) TrashArticle(ctx context.Context, id string) (*kb.TrashItem, error) {
	var item kb.TrashItem
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		article, err := s.articleRepo.Remove(txCtx, id)
		if err != nil {
			return err
		}
		item = kb.NewArticleTrashItem(*article, s.clock.Now())
		return s.trashRepo.Append(txCtx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("article trashed", "id", id, "title", item.Title())
	return &item, nil
}

func (s *trashService) TrashUpdate(ctx context.Context, id string) (*kb.TrashItem, error) {
	var item kb.TrashItem
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		update, err := s.updateRepo.Remove(txCtx, id)
		if err != nil {
			return err
		}
		item = kb.NewUpdateTrashItem(*update, s.clock.Now())
		return s.trashRepo.Append(txCtx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("update trashed", "id", id, "title", item.Title())
	return &item, nil
}

func (s *trashService) ListTrash(ctx context.Context) ([]kb.TrashItem, error) {
	return s.trashRepo.List(ctx)
}

// Restore returns the record to the collection named by its kind.
func (s *trashService) Restore(ctx context.Context, index int) (*kb.TrashItem, error) {
	var item *kb.TrashItem
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.trashRepo.Take(txCtx, index)
		if err != nil {
			return err
		}

		switch item.Kind {
		case kb.TrashKindArticle:
			return s.articleRepo.Append(txCtx, item.Article)
		case kb.TrashKindUpdate:
			return s.updateRepo.Prepend(txCtx, item.Update)
		default:
			return fmt.Errorf("unknown trash item kind %q", item.Kind)
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("trash item restored", "kind", item.Kind, "title", item.Title())
	return item, nil
}

func (s *trashService) Purge(ctx context.Context, index int) (*kb.TrashItem, error) {
	item, err := s.trashRepo.Take(ctx, index)
	if err != nil {
		return nil, err
	}

	s.logger.Info("trash item purged", "kind", item.Kind, "title", item.Title())
	return item, nil
}
