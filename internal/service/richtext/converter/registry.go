package converter

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/richtext"
	richtextSvc "helpcenter/internal/domain/services/richtext"
)

// ConverterRegistry routes files imported into the article editor to a
// converter by extension. Safe for concurrent use.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[string]richtextSvc.ContentConverter // key: file extension (e.g., ".html")
}

// NewConverterRegistry creates a registry with the standard converters registered.
func NewConverterRegistry() *ConverterRegistry {
	registry := &ConverterRegistry{
		converters: make(map[string]richtextSvc.ContentConverter),
	}
	registry.Register(NewHTMLConverter())
	registry.Register(NewTextConverter())
	return registry
}

// Register associates a converter with its supported extensions.
// Extensions are normalised to lowercase with a leading dot.
func (r *ConverterRegistry) Register(converter richtextSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range converter.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = converter
	}
}

// GetConverter returns nil if no converter handles the extension.
func (r *ConverterRegistry) GetConverter(fileExt string) richtextSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[strings.ToLower(fileExt)]
}

// Convert picks a converter from the filename's extension.
func (r *ConverterRegistry) Convert(ctx context.Context, filename string, content []byte) (*richtext.Document, error) {
	ext := filepath.Ext(filename)
	converter := r.GetConverter(ext)
	if converter == nil {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrValidation, ext)
	}
	return converter.Convert(ctx, content)
}

// SupportedExtensions returns the registered extensions, sorted.
func (r *ConverterRegistry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.converters))
}
