package richtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"helpcenter/internal/domain/models/richtext"
	"helpcenter/internal/service/richtext/sanitizer"
)

// Parser turns untrusted markup into a document. Markup is sanitised first and
// the builder then keeps only the constructs the document model can express.
type Parser struct {
	sanitizer *sanitizer.HTMLSanitizer
}

func NewParser() *Parser {
	return &Parser{sanitizer: sanitizer.NewHTMLSanitizer()}
}

// Parse sanitises markup and builds a document from it.
func (p *Parser) Parse(markup string) (*richtext.Document, error) {
	return parseMarkup(p.sanitizer.Sanitize(markup))
}

// parseMarkup builds a document from markup that is already trusted.
func parseMarkup(markup string) (*richtext.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	b := &builder{}
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		for _, n := range body.Nodes {
			b.children(n, richtext.Marks{})
		}
	})
	b.close()
	return &richtext.Document{Blocks: b.blocks}, nil
}

// openBlock is the text block currently receiving spans.
type openBlock struct {
	block    richtext.Block
	explicit bool // came from a tag; kept even when empty
}

type builder struct {
	blocks []richtext.Block
	cur    *openBlock
}

func (b *builder) children(n *html.Node, m richtext.Marks) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.node(c, m)
	}
}

func (b *builder) node(n *html.Node, m richtext.Marks) {
	switch n.Type {
	case html.TextNode:
		b.text(collapseSpace(n.Data), m)
	case html.ElementNode:
		b.element(n, m)
	case html.DocumentNode:
		b.children(n, m)
	}
}

func (b *builder) element(n *html.Node, m richtext.Marks) {
	tag := strings.ToLower(n.Data)
	switch tag {
	case "script", "style", "head", "title", "template", "noscript":
		return
	case "br":
		b.text("\n", m)
	case "img":
		if src := attr(n, "src"); isImageSrc(src) {
			b.embed(richtext.Block{Kind: richtext.BlockImage, Src: src})
		}
	case "iframe":
		if src := attr(n, "src"); isEmbedSrc(src) {
			b.embed(richtext.Block{Kind: richtext.BlockVideo, Src: src})
		}
	case "div":
		if src, ok := videoWrapperSrc(n); ok {
			b.embed(richtext.Block{Kind: richtext.BlockVideo, Src: src})
			return
		}
		b.block(richtext.BlockParagraph, 0, n, m)
	case "p", "blockquote", "pre", "section", "article", "header", "footer", "figure", "figcaption":
		b.block(richtext.BlockParagraph, 0, n, m)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.block(richtext.BlockHeading, int(tag[1]-'0'), n, m)
	case "ul", "ol":
		parent := b.suspend()
		b.children(n, elementMarks(n, m))
		b.resume(parent)
	case "li":
		b.block(richtext.BlockListItem, 0, n, m)
	default:
		b.children(n, elementMarks(n, m))
	}
}

// block parses n as an explicit text block, splitting any block around it.
func (b *builder) block(kind richtext.BlockKind, level int, n *html.Node, m richtext.Marks) {
	parent := b.suspend()
	b.cur = &openBlock{block: richtext.Block{Kind: kind, Level: level}, explicit: true}
	b.children(n, elementMarks(n, m))
	b.close()
	b.resume(parent)
}

// embed emits a media block, splitting the current text block around it.
func (b *builder) embed(block richtext.Block) {
	parent := b.suspend()
	b.blocks = append(b.blocks, block)
	b.resume(parent)
}

func (b *builder) text(s string, m richtext.Marks) {
	if s == "" {
		return
	}
	if b.cur == nil {
		if strings.TrimSpace(s) == "" {
			return
		}
		b.cur = &openBlock{block: richtext.Block{Kind: richtext.BlockParagraph}}
	}
	b.cur.block.Spans = append(b.cur.block.Spans, richtext.Span{Text: s, Marks: m})
}

// close finishes the current block. Empty implicit blocks are dropped.
func (b *builder) close() {
	if b.cur == nil {
		return
	}
	blk := finishBlock(b.cur.block)
	if len(blk.Spans) > 0 || b.cur.explicit {
		b.blocks = append(b.blocks, blk)
	}
	b.cur = nil
}

// suspend closes the current block for a nested block or embed, dropping it
// if nothing was written yet, and returns it so the remainder can continue.
func (b *builder) suspend() *richtext.Block {
	if b.cur == nil {
		return nil
	}
	parent := b.cur.block
	blk := finishBlock(parent)
	if len(blk.Spans) > 0 {
		b.blocks = append(b.blocks, blk)
	}
	b.cur = nil
	return &parent
}

// resume opens an implicit continuation of a suspended block.
func (b *builder) resume(parent *richtext.Block) {
	if parent == nil {
		return
	}
	b.cur = &openBlock{block: richtext.Block{Kind: parent.Kind, Level: parent.Level}}
}

// finishBlock trims the outer whitespace of a block, drops one trailing line
// break and merges adjacent spans.
func finishBlock(blk richtext.Block) richtext.Block {
	spans := normalizeSpans(blk.Spans)
	if len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " ")
		spans[last].Text = strings.TrimSuffix(spans[last].Text, "\n")
	}
	blk.Spans = normalizeSpans(spans)
	return blk
}

// elementMarks adds the inline styles n carries to m.
func elementMarks(n *html.Node, m richtext.Marks) richtext.Marks {
	switch strings.ToLower(n.Data) {
	case "strong", "b":
		m.Bold = true
	case "em", "i":
		m.Italic = true
	case "font":
		if size, err := strconv.Atoi(attr(n, "size")); err == nil && size >= 1 && size <= 7 {
			m.Size = size
		}
		if c := normalizeColor(attr(n, "color")); c != "" {
			m.Color = c
		}
	}

	style := parseStyle(attr(n, "style"))
	if w := style["font-weight"]; w == "bold" || w == "bolder" {
		m.Bold = true
	} else if weight, err := strconv.Atoi(w); err == nil && weight >= 600 {
		m.Bold = true
	}
	if style["font-style"] == "italic" {
		m.Italic = true
	}
	if size := fontSizeFromKeyword(style["font-size"]); size > 0 {
		m.Size = size
	}
	if c := normalizeColor(style["color"]); c != "" {
		m.Color = c
	}
	return m
}

// videoWrapperSrc recognises the responsive embed wrapper: a div with no text
// of its own around a single frame.
func videoWrapperSrc(n *html.Node) (string, bool) {
	sel := goquery.NewDocumentFromNode(n).Selection
	frame := sel.Find("iframe").First()
	if frame.Length() == 0 || strings.TrimSpace(sel.Text()) != "" {
		return "", false
	}
	src, _ := frame.Attr("src")
	return src, isEmbedSrc(src)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func isImageSrc(src string) bool {
	return strings.HasPrefix(src, "data:image/") || isEmbedSrc(src)
}

func isEmbedSrc(src string) bool {
	return strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://")
}

// collapseSpace folds runs of HTML whitespace into one space.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

// Canonicalize parses markup and renders it back, so that stored content is
// always renderer output.
func (p *Parser) Canonicalize(markup string) (string, error) {
	doc, err := p.Parse(markup)
	if err != nil {
		return "", err
	}
	return Render(*doc), nil
}
