package richtext

import (
	"slices"
	"unicode/utf8"

	"helpcenter/internal/domain/models/richtext"
)

// normalizeSpans drops empty spans and merges neighbours with equal marks.
func normalizeSpans(spans []richtext.Span) []richtext.Span {
	out := make([]richtext.Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Marks == s.Marks {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// splitAt makes sure a span boundary exists at rune offset off and returns
// the index of the first span starting there.
func splitAt(spans []richtext.Span, off int) ([]richtext.Span, int) {
	pos := 0
	for i, s := range spans {
		if off == pos {
			return spans, i
		}
		n := utf8.RuneCountInString(s.Text)
		if off < pos+n {
			left, right := splitRunes(s.Text, off-pos)
			spans = slices.Insert(spans, i+1, richtext.Span{Text: right, Marks: s.Marks})
			spans[i].Text = left
			return spans, i + 1
		}
		pos += n
	}
	return spans, len(spans)
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for byteIdx := range s {
		if i == n {
			return s[:byteIdx], s[byteIdx:]
		}
		i++
	}
	return s, ""
}

// segment is the span index range [from, to) of one block covered by a range.
type segment struct {
	block    int
	from, to int
}

// segments splits spans at the range ends and returns the covered spans of
// every text block in r.
func segments(doc *richtext.Document, r richtext.Range) []segment {
	var segs []segment
	for bi := r.Start.Block; bi <= r.End.Block && bi < len(doc.Blocks); bi++ {
		b := &doc.Blocks[bi]
		if !b.IsText() {
			continue
		}
		start, end := 0, b.Len()
		if bi == r.Start.Block {
			start = r.Start.Offset
		}
		if bi == r.End.Block {
			end = r.End.Offset
		}
		if start >= end {
			continue
		}
		var i, j int
		b.Spans, i = splitAt(b.Spans, start)
		b.Spans, j = splitAt(b.Spans, end)
		segs = append(segs, segment{block: bi, from: i, to: j})
	}
	return segs
}

func normalizeBlocks(doc *richtext.Document, segs []segment) {
	for _, s := range segs {
		doc.Blocks[s.block].Spans = normalizeSpans(doc.Blocks[s.block].Spans)
	}
}
