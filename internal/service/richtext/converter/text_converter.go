package converter

import (
	"context"
	"strings"
	"unicode/utf8"

	"helpcenter/internal/domain/models/richtext"
	richtextSvc "helpcenter/internal/domain/services/richtext"
)

// textConverter turns plain text into paragraphs split on blank lines.
// Single line breaks inside a paragraph are kept.
type textConverter struct{}

func NewTextConverter() richtextSvc.ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input []byte) (*richtext.Document, error) {
	text := strings.ToValidUTF8(string(input), string(utf8.RuneError))
	text = strings.ReplaceAll(text, "\r\n", "\n")

	doc := &richtext.Document{}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.Trim(para, "\n")
		if strings.TrimSpace(para) == "" {
			continue
		}
		doc.Blocks = append(doc.Blocks, richtext.Paragraph(para))
	}
	return doc, nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (c *textConverter) Name() string {
	return "text"
}
