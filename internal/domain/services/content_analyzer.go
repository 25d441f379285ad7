package services

// ContentAnalyzer handles content analysis operations
type ContentAnalyzer interface {
	// CountWords counts words in rendered rich-text markup
	CountWords(markup string) int

	// PlainText strips markup, keeping the readable text
	PlainText(markup string) string
}
