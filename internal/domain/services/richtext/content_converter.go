package richtext

import (
	"context"

	"helpcenter/internal/domain/models/richtext"
)

// ContentConverter converts an imported file into the editor's document model.
// Each converter handles a specific file type.
//
// Implementations should be stateless and thread-safe.
type ContentConverter interface {
	// Convert transforms input content into a document.
	Convert(ctx context.Context, input []byte) (*richtext.Document, error)

	// SupportedExtensions returns file extensions this converter handles.
	// Extensions include the leading dot (e.g., [".html", ".htm"]).
	SupportedExtensions() []string

	// Name returns a human-readable converter name for logging/debugging.
	Name() string
}
