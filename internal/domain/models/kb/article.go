package kb

import (
	"slices"
	"time"
)

// Article is a knowledge-base document.
type Article struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Subtitle       string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Category       string    `json:"category" yaml:"category"`
	Content        string    `json:"content" yaml:"content"` // Rendered rich-text markup
	PublishedAt    time.Time `json:"published_at" yaml:"published_at"`
	Tags           []string  `json:"tags" yaml:"tags"`
	Versions       []string  `json:"versions" yaml:"versions,omitempty"` // Prior content, oldest first
	HelpfulCount   int       `json:"helpful_count" yaml:"helpful_count"`
	UnhelpfulCount int       `json:"unhelpful_count" yaml:"unhelpful_count"`
}

// IsPublishedAt reports whether the article is visible to viewers at now.
func (a *Article) IsPublishedAt(now time.Time) bool {
	return !a.PublishedAt.After(now)
}

// Clone returns a deep copy so stored records never share slices with callers.
func (a Article) Clone() Article {
	a.Tags = slices.Clone(a.Tags)
	a.Versions = slices.Clone(a.Versions)
	return a
}

// ArticleStats is one analytics row.
type ArticleStats struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	HelpfulCount   int     `json:"helpful_count"`
	UnhelpfulCount int     `json:"unhelpful_count"`
	HelpfulRatio   float64 `json:"helpful_ratio"` // 0 when no feedback yet
	WordCount      int     `json:"word_count"`
	VersionCount   int     `json:"version_count"`
	Published      bool    `json:"published"`
}
