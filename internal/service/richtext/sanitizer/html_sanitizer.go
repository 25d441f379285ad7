package sanitizer

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fontSizeAttr  = regexp.MustCompile(`^[1-7]$`)
	fontColorAttr = regexp.MustCompile(`^#[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)
	embedSrc      = regexp.MustCompile(`^https?://`)
)

// HTMLSanitizer removes dangerous HTML elements and attributes before markup
// reaches the document parser.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates the policy used for editor and imported markup.
// On top of the UGC policy it keeps what the editor toolbar produces: inline
// colour and size, data URI images and embedded video frames.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()

	policy.AllowElements("span", "font", "div")
	policy.AllowAttrs("size").Matching(fontSizeAttr).OnElements("font")
	policy.AllowAttrs("color").Matching(fontColorAttr).OnElements("font")
	policy.AllowStyles("color", "font-size", "font-weight", "font-style").
		OnElements("span", "font", "p", "div", "li", "strong", "em", "b", "i")

	policy.AllowAttrs("src").Matching(embedSrc).OnElements("iframe")
	policy.AllowAttrs("allowfullscreen", "frameborder").OnElements("iframe")

	return &HTMLSanitizer{policy: policy}
}

// Sanitize removes scripts, event handlers, javascript: URLs and anything
// else the policy does not allow.
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
