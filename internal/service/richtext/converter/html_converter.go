package converter

import (
	"context"
	"fmt"

	"helpcenter/internal/domain/models/richtext"
	richtextSvc "helpcenter/internal/domain/services/richtext"
	richtextEdit "helpcenter/internal/service/richtext"
)

// htmlConverter sanitises an HTML file and parses it into a document.
type htmlConverter struct {
	parser *richtextEdit.Parser
}

func NewHTMLConverter() richtextSvc.ContentConverter {
	return &htmlConverter{parser: richtextEdit.NewParser()}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (*richtext.Document, error) {
	doc, err := c.parser.Parse(string(input))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML: %w", err)
	}
	return doc, nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
