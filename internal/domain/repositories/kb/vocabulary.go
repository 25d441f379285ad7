package kb

import (
	"context"

	"helpcenter/internal/domain/models/kb"
)

// VocabularyRepository stores the category and tag term sets.
type VocabularyRepository interface {
	List(ctx context.Context, kind kb.VocabularyKind) ([]string, error)
	// Add appends term if missing and reports whether it was added.
	Add(ctx context.Context, kind kb.VocabularyKind, term string) (bool, error)
}
