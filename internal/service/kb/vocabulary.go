package kb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"helpcenter/internal/config"
	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/kb"
	kbRepo "helpcenter/internal/domain/repositories/kb"
	kbSvc "helpcenter/internal/domain/services/kb"
)

// vocabularyService implements the VocabularyService interface
type vocabularyService struct {
	vocabRepo kbRepo.VocabularyRepository
	logger    *slog.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocabRepo kbRepo.VocabularyRepository, logger *slog.Logger) kbSvc.VocabularyService {
	return &vocabularyService{
		vocabRepo: vocabRepo,
		logger:    logger,
	}
}

func (s *vocabularyService) Vocabulary(ctx context.Context) (*kb.Vocabulary, error) {
	categories, err := s.vocabRepo.List(ctx, kb.VocabularyCategories)
	if err != nil {
		return nil, err
	}
	tags, err := s.vocabRepo.List(ctx, kb.VocabularyTags)
	if err != nil {
		return nil, err
	}
	return &kb.Vocabulary{Categories: categories, Tags: tags}, nil
}

func (s *vocabularyService) AddTerm(ctx context.Context, kind kb.VocabularyKind, name string) (string, error) {
	term := strings.TrimSpace(name)
	if err := validation.Validate(term,
		validation.Required,
		validation.RuneLength(1, config.MaxTermLength),
	); err != nil {
		return "", fmt.Errorf("%w: %s %v", domain.ErrValidation, kind, err)
	}

	added, err := s.vocabRepo.Add(ctx, kind, term)
	if err != nil {
		return "", err
	}
	if added {
		s.logger.Info("vocabulary term added", "kind", kind, "term", term)
	}
	return term, nil
}
