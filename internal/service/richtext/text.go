package richtext

import (
	"strings"
	"unicode"

	"helpcenter/internal/domain/services"
)

// PlainText extracts the readable text of rendered markup, one line per block.
func PlainText(markup string) string {
	doc, err := parseMarkup(markup)
	if err != nil {
		return ""
	}
	lines := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if b.IsText() {
			lines = append(lines, b.Text())
		}
	}
	return strings.Join(lines, "\n")
}

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() services.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountWords counts whitespace-separated words in the text of the markup
func (s *contentAnalyzerService) CountWords(markup string) int {
	return len(strings.FieldsFunc(s.PlainText(markup), unicode.IsSpace))
}

func (s *contentAnalyzerService) PlainText(markup string) string {
	return PlainText(markup)
}
