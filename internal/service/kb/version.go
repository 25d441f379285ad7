package kb

import (
	"context"
	"fmt"
	"log/slog"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	"helpcenter/internal/domain/repositories"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// versionService implements the VersionService interface
type versionService struct {
	articleRepo kbRepo.ArticleRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(
	articleRepo kbRepo.ArticleRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) kbSvc.VersionService {
	return &versionService{
		articleRepo: articleRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *versionService) ListVersions(ctx context.Context, articleID string) ([]string, error) {
	article, err := s.articleRepo.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return article.Versions, nil
}

// RestoreVersion is itself a save: the content being replaced is appended,
// so history is never truncated or reordered.
func (s *versionService) RestoreVersion(ctx context.Context, articleID string, index int) (*kb.Article, error) {
	var restored *kb.Article
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		article, err := s.articleRepo.Get(txCtx, articleID)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(article.Versions) {
			return fmt.Errorf("%w: version %d out of range (article has %d)", domain.ErrValidation, index, len(article.Versions))
		}

		previous := article.Content
		article.Content = article.Versions[index]
		article.Versions = append(article.Versions, previous)
		if err := s.articleRepo.Replace(txCtx, article); err != nil {
			return err
		}
		restored = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("article version restored",
		"id", articleID,
		"version", index,
		"versions", len(restored.Versions),
	)
	return restored, nil
}
