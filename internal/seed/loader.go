package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"helpcenter/internal/domain/models/kb"
	"helpcenter/internal/domain/repositories"
	kbRepo "helpcenter/internal/domain/repositories/kb"
)

// Canonicalizer rewrites markup into the form the editor stores.
type Canonicalizer interface {
	Canonicalize(markup string) (string, error)
}

// Loader writes seed data into the repositories.
type Loader struct {
	articleRepo kbRepo.ArticleRepository
	updateRepo  kbRepo.UpdateRepository
	vocabRepo   kbRepo.VocabularyRepository
	txManager   repositories.TransactionManager
	content     Canonicalizer
	formatDate  func(time.Time) string
	logger      *slog.Logger
}

// NewLoader creates a new seed loader
func NewLoader(
	articleRepo kbRepo.ArticleRepository,
	updateRepo kbRepo.UpdateRepository,
	vocabRepo kbRepo.VocabularyRepository,
	txManager repositories.TransactionManager,
	content Canonicalizer,
	formatDate func(time.Time) string,
	logger *slog.Logger,
) *Loader {
	return &Loader{
		articleRepo: articleRepo,
		updateRepo:  updateRepo,
		vocabRepo:   vocabRepo,
		txManager:   txManager,
		content:     content,
		formatDate:  formatDate,
		logger:      logger,
	}
}

// Load adds everything in f in one transaction. Publish offsets are applied
// to now. Loading the same IDs twice fails with a conflict and changes nothing.
func (l *Loader) Load(ctx context.Context, f *File, now time.Time) error {
	articles, updates := f.Build(now, l.formatDate)

	for i := range articles {
		content, err := l.content.Canonicalize(articles[i].Content)
		if err != nil {
			return fmt.Errorf("seed article %s: %w", articles[i].ID, err)
		}
		articles[i].Content = content
	}
	for i := range updates {
		description, err := l.content.Canonicalize(updates[i].Description)
		if err != nil {
			return fmt.Errorf("seed update %s: %w", updates[i].ID, err)
		}
		updates[i].Description = description
	}

	err := l.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, c := range f.Categories {
			if _, err := l.vocabRepo.Add(txCtx, kb.VocabularyCategories, c); err != nil {
				return err
			}
		}
		for _, t := range f.Tags {
			if _, err := l.vocabRepo.Add(txCtx, kb.VocabularyTags, t); err != nil {
				return err
			}
		}
		for i := range articles {
			if err := l.articleRepo.Append(txCtx, &articles[i]); err != nil {
				return err
			}
		}
		// the feed is newest first and only grows at the front
		for i := len(updates) - 1; i >= 0; i-- {
			if err := l.updateRepo.Prepend(txCtx, &updates[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	l.logger.Info("seed data loaded",
		"articles", len(articles),
		"updates", len(updates),
		"categories", len(f.Categories),
		"tags", len(f.Tags),
	)
	return nil
}
