package richtext

import (
	"slices"
	"unicode/utf8"

	"helpcenter/internal/domain/models/richtext"
)

// InsertText inserts text at pos with the marks of the character before it and
// returns the caret after the insertion. On an embed the text goes into a new
// paragraph after it.
func InsertText(doc *richtext.Document, pos richtext.Position, text string) richtext.Position {
	if text == "" {
		return doc.Clamp(pos)
	}
	if len(doc.Blocks) == 0 {
		doc.Blocks = append(doc.Blocks, richtext.Block{Kind: richtext.BlockParagraph})
	}
	pos = doc.Clamp(pos)
	n := utf8.RuneCountInString(text)

	b := &doc.Blocks[pos.Block]
	if !b.IsText() {
		doc.Blocks = slices.Insert(doc.Blocks, pos.Block+1, richtext.Paragraph(text))
		return richtext.Position{Block: pos.Block + 1, Offset: n}
	}

	marks := marksBefore(b.Spans, pos.Offset)
	var i int
	b.Spans, i = splitAt(b.Spans, pos.Offset)
	b.Spans = slices.Insert(b.Spans, i, richtext.Span{Text: text, Marks: marks})
	b.Spans = normalizeSpans(b.Spans)
	return richtext.Position{Block: pos.Block, Offset: pos.Offset + n}
}

// marksBefore returns the marks of the character left of off (or of the first
// character at the start of the block).
func marksBefore(spans []richtext.Span, off int) richtext.Marks {
	if len(spans) == 0 {
		return richtext.Marks{}
	}
	if off == 0 {
		return spans[0].Marks
	}
	pos := 0
	for _, s := range spans {
		pos += utf8.RuneCountInString(s.Text)
		if off <= pos {
			return s.Marks
		}
	}
	return spans[len(spans)-1].Marks
}

// InsertBlock inserts an embed at pos, splitting the text block there. The
// returned caret is at the start of the text block following the embed,
// which is created when missing.
func InsertBlock(doc *richtext.Document, pos richtext.Position, embed richtext.Block) richtext.Position {
	if len(doc.Blocks) == 0 {
		doc.Blocks = []richtext.Block{embed, {Kind: richtext.BlockParagraph}}
		return richtext.Position{Block: 1}
	}
	pos = doc.Clamp(pos)
	cur := doc.Blocks[pos.Block]

	if !cur.IsText() {
		at := pos.Block + 1
		doc.Blocks = slices.Insert(doc.Blocks, at, embed)
		if at+1 >= len(doc.Blocks) || !doc.Blocks[at+1].IsText() {
			doc.Blocks = slices.Insert(doc.Blocks, at+1, richtext.Block{Kind: richtext.BlockParagraph})
		}
		return richtext.Position{Block: at + 1}
	}

	spans, k := splitAt(slices.Clone(cur.Spans), pos.Offset)
	left := richtext.Block{Kind: cur.Kind, Level: cur.Level, Spans: normalizeSpans(spans[:k])}
	right := richtext.Block{Kind: cur.Kind, Level: cur.Level, Spans: normalizeSpans(spans[k:])}

	replacement := make([]richtext.Block, 0, 3)
	if len(left.Spans) > 0 {
		replacement = append(replacement, left)
	}
	replacement = append(replacement, embed, right)

	doc.Blocks = slices.Replace(doc.Blocks, pos.Block, pos.Block+1, replacement...)
	return richtext.Position{Block: pos.Block + len(replacement) - 1}
}
