package richtext

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"helpcenter/internal/domain/models/richtext"
)

const (
	imageStyle   = "max-width: 100%; height: auto; border-radius: 6px; margin: 20px 0; display: block;"
	videoWrapper = "position:relative;padding-bottom:56.25%;height:0;overflow:hidden;border-radius:6px;margin:20px 0;"
	videoFrame   = "position:absolute;top:0;left:0;width:100%;height:100%;"
)

// Render serialises a document to the canonical markup stored on articles and
// updates. Re-parsing the output of Render yields the same document.
func Render(doc richtext.Document) string {
	var sb strings.Builder
	inList := false
	for _, b := range doc.Blocks {
		if b.Kind == richtext.BlockListItem && !inList {
			sb.WriteString("<ul>")
			inList = true
		} else if b.Kind != richtext.BlockListItem && inList {
			sb.WriteString("</ul>")
			inList = false
		}
		renderBlock(&sb, b)
	}
	if inList {
		sb.WriteString("</ul>")
	}
	return sb.String()
}

func renderBlock(sb *strings.Builder, b richtext.Block) {
	switch b.Kind {
	case richtext.BlockHeading:
		level := min(max(b.Level, 1), 6)
		fmt.Fprintf(sb, "<h%d>", level)
		renderSpans(sb, b.Spans)
		fmt.Fprintf(sb, "</h%d>", level)
	case richtext.BlockListItem:
		sb.WriteString("<li>")
		renderSpans(sb, b.Spans)
		sb.WriteString("</li>")
	case richtext.BlockImage:
		fmt.Fprintf(sb, `<img src="%s" style="%s" />`, html.EscapeString(b.Src), imageStyle)
	case richtext.BlockVideo:
		fmt.Fprintf(sb, `<div style="%s"><iframe src="%s" style="%s" frameborder="0" allowfullscreen></iframe></div>`,
			videoWrapper, html.EscapeString(b.Src), videoFrame)
	default:
		sb.WriteString("<p>")
		renderSpans(sb, b.Spans)
		sb.WriteString("</p>")
	}
}

func renderSpans(sb *strings.Builder, spans []richtext.Span) {
	text := ""
	for _, s := range spans {
		renderSpan(sb, s)
		text += s.Text
	}
	// an empty block or a trailing line break needs one more <br> to stay visible
	if text == "" || strings.HasSuffix(text, "\n") {
		sb.WriteString("<br>")
	}
}

func renderSpan(sb *strings.Builder, s richtext.Span) {
	if s.Text == "" {
		return
	}
	var open, close []string
	if s.Marks.Bold {
		open, close = append(open, "<strong>"), append(close, "</strong>")
	}
	if s.Marks.Italic {
		open, close = append(open, "<em>"), append(close, "</em>")
	}
	if style := spanStyle(s.Marks); style != "" {
		open, close = append(open, `<span style="`+style+`">`), append(close, "</span>")
	}

	for _, tag := range open {
		sb.WriteString(tag)
	}
	lines := strings.Split(s.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("<br>")
		}
		sb.WriteString(html.EscapeString(line))
	}
	for i := len(close) - 1; i >= 0; i-- {
		sb.WriteString(close[i])
	}
}

func spanStyle(m richtext.Marks) string {
	var decls []string
	if kw := fontSizeKeyword(m.Size); kw != "" {
		decls = append(decls, "font-size: "+kw)
	}
	if m.Color != "" {
		decls = append(decls, "color: "+m.Color)
	}
	return strings.Join(decls, "; ")
}
