package richtext

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// MarkdownExporter converts stored markup to Markdown for download.
type MarkdownExporter struct {
	converter *md.Converter
}

func NewMarkdownExporter() *MarkdownExporter {
	converter := md.NewConverter("", true, nil)
	// video frames have no Markdown form; keep a link to the embed
	converter.AddRules(md.Rule{
		Filter: []string{"iframe"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			src, ok := selec.Attr("src")
			if !ok {
				return md.String("")
			}
			return md.String("\n\n[Видео](" + src + ")\n\n")
		},
	})
	return &MarkdownExporter{converter: converter}
}

// Export renders a title heading followed by the converted body.
func (e *MarkdownExporter) Export(title, markup string) (string, error) {
	body, err := e.converter.ConvertString(markup)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	if title == "" {
		return body + "\n", nil
	}
	return "# " + title + "\n\n" + body + "\n", nil
}
