package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// VocabularyService manages the category and tag term sets
type VocabularyService interface {
	Vocabulary(ctx context.Context) (*kb.Vocabulary, error)

	// AddTerm trims name, adds it if missing and returns the stored term.
	// An empty name is domain.ErrValidation.
	AddTerm(ctx context.Context, kind kb.VocabularyKind, name string) (string, error)
}
