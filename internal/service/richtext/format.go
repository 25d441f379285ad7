package richtext

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/richtext"
)

// ToggleBold makes the range bold, or plain if it is already entirely bold.
func ToggleBold(doc *richtext.Document, r richtext.Range) {
	toggleMark(doc, r,
		func(m richtext.Marks) bool { return m.Bold },
		func(m *richtext.Marks, on bool) { m.Bold = on })
}

// ToggleItalic makes the range italic, or upright if it is already entirely italic.
func ToggleItalic(doc *richtext.Document, r richtext.Range) {
	toggleMark(doc, r,
		func(m richtext.Marks) bool { return m.Italic },
		func(m *richtext.Marks, on bool) { m.Italic = on })
}

func toggleMark(doc *richtext.Document, r richtext.Range, has func(richtext.Marks) bool, set func(*richtext.Marks, bool)) {
	r = doc.ClampRange(r)
	if r.Collapsed() {
		return
	}
	segs := segments(doc, r)

	all := true
	for _, s := range segs {
		for _, span := range doc.Blocks[s.block].Spans[s.from:s.to] {
			if !has(span.Marks) {
				all = false
			}
		}
	}
	for _, s := range segs {
		spans := doc.Blocks[s.block].Spans
		for i := s.from; i < s.to; i++ {
			set(&spans[i].Marks, !all)
		}
	}
	normalizeBlocks(doc, segs)
}

// SetFontSize applies a toolbar size 1..7 to the range.
func SetFontSize(doc *richtext.Document, r richtext.Range, size int) error {
	if err := validation.Validate(size, validation.Required, validation.Min(1), validation.Max(7)); err != nil {
		return fmt.Errorf("%w: font size %v", domain.ErrValidation, err)
	}
	applyMarks(doc, r, func(m *richtext.Marks) { m.Size = size })
	return nil
}

// SetColor applies a hex text colour to the range.
func SetColor(doc *richtext.Document, r richtext.Range, color string) error {
	if err := validation.Validate(color, validation.Required, is.HexColor); err != nil {
		return fmt.Errorf("%w: color %v", domain.ErrValidation, err)
	}
	c := normalizeColor(color)
	applyMarks(doc, r, func(m *richtext.Marks) { m.Color = c })
	return nil
}

func applyMarks(doc *richtext.Document, r richtext.Range, fn func(*richtext.Marks)) {
	r = doc.ClampRange(r)
	if r.Collapsed() {
		return
	}
	segs := segments(doc, r)
	for _, s := range segs {
		spans := doc.Blocks[s.block].Spans
		for i := s.from; i < s.to; i++ {
			fn(&spans[i].Marks)
		}
	}
	normalizeBlocks(doc, segs)
}

// ToggleList turns the text blocks touched by r into list items, or back into
// paragraphs when all of them already are list items. A collapsed range
// affects the caret's block.
func ToggleList(doc *richtext.Document, r richtext.Range) {
	r = doc.ClampRange(r)
	if len(doc.Blocks) == 0 {
		doc.Blocks = append(doc.Blocks, richtext.Block{Kind: richtext.BlockListItem})
		return
	}

	all := true
	touched := false
	for bi := r.Start.Block; bi <= r.End.Block; bi++ {
		b := doc.Blocks[bi]
		if !b.IsText() {
			continue
		}
		touched = true
		if b.Kind != richtext.BlockListItem {
			all = false
		}
	}
	if !touched {
		return
	}

	target := richtext.BlockListItem
	if all {
		target = richtext.BlockParagraph
	}
	for bi := r.Start.Block; bi <= r.End.Block; bi++ {
		if doc.Blocks[bi].IsText() {
			doc.Blocks[bi].Kind = target
			doc.Blocks[bi].Level = 0
		}
	}
}
