package kb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	"helpcenter/internal/domain/services"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// articleService implements the ArticleService interface
type articleService struct {
	articleRepo     kbRepo.ArticleRepository
	clock           kbSvc.Clock
	contentAnalyzer services.ContentAnalyzer
	logger          *slog.Logger
}

// NewArticleService creates a new article service
func NewArticleService(
	articleRepo kbRepo.ArticleRepository,
	clock kbSvc.Clock,
	contentAnalyzer services.ContentAnalyzer,
	logger *slog.Logger,
) kbSvc.ArticleService {
	return &articleService{
		articleRepo:     articleRepo,
		clock:           clock,
		contentAnalyzer: contentAnalyzer,
		logger:          logger,
	}
}

// SaveArticle creates or replaces an article.
// On replace the previous content is pushed onto Versions and the feedback
// counters are carried over.
func (s *articleService) SaveArticle(ctx context.Context, req *kbSvc.SaveArticleRequest) (*kb.Article, error) {
	if err := validateSaveArticle(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	article := kb.Article{
		ID:          req.ID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Category:    req.Category,
		Content:     req.Content,
		PublishedAt: req.PublishedAt,
		Tags:        normalizeTags(req.Tags),
		Versions:    []string{},
	}

	if req.ID == "" {
		article.ID = uuid.NewString()
		if err := s.articleRepo.Append(ctx, &article); err != nil {
			return nil, err
		}
		s.logger.Info("article created",
			"id", article.ID,
			"title", article.Title,
			"category", article.Category,
			"published_at", article.PublishedAt,
		)
		return &article, nil
	}

	old, err := s.articleRepo.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	article.Versions = append(old.Versions, old.Content)
	article.HelpfulCount = old.HelpfulCount
	article.UnhelpfulCount = old.UnhelpfulCount

	if err := s.articleRepo.Replace(ctx, &article); err != nil {
		return nil, err
	}

	s.logger.Info("article updated",
		"id", article.ID,
		"title", article.Title,
		"versions", len(article.Versions),
	)
	return &article, nil
}

func (s *articleService) GetArticle(ctx context.Context, id string) (*kb.Article, error) {
	return s.articleRepo.Get(ctx, id)
}

func (s *articleService) ListArticles(ctx context.Context) ([]kb.Article, error) {
	return s.articleRepo.List(ctx)
}

// SearchArticles keeps collection order. The content is matched on its
// readable text, so markup never produces a hit.
func (s *articleService) SearchArticles(ctx context.Context, req *kbSvc.SearchArticlesRequest) ([]kb.Article, error) {
	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(req.Query))

	result := make([]kb.Article, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		if !req.IncludeScheduled && !a.IsPublishedAt(now) {
			continue
		}
		if query != "" && !s.matches(fold, a, query) {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (s *articleService) matches(fold cases.Caser, a *kb.Article, query string) bool {
	fields := []string{a.Title, a.Subtitle, a.Category, s.contentAnalyzer.PlainText(a.Content)}
	for _, f := range fields {
		if strings.Contains(fold.String(f), query) {
			return true
		}
	}
	return false
}

func (s *articleService) PublishNow(ctx context.Context, id string) (*kb.Article, error) {
	article, err := s.articleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	article.PublishedAt = s.clock.Now()
	if err := s.articleRepo.Replace(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("article published", "id", id, "published_at", article.PublishedAt)
	return article, nil
}

func (s *articleService) RecordFeedback(ctx context.Context, id string, helpful bool) (*kb.Article, error) {
	article, err := s.articleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if helpful {
		article.HelpfulCount++
	} else {
		article.UnhelpfulCount++
	}
	if err := s.articleRepo.Replace(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Debug("article feedback recorded", "id", id, "helpful", helpful)
	return article, nil
}
