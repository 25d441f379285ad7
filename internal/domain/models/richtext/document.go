// Package richtext holds the document model edited by the rich-text surface.
// A Document is an ordered list of blocks; text blocks carry styled spans.
package richtext

import (
	"slices"
	"strings"
	"unicode/utf8"
)

type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockListItem  BlockKind = "list_item"
	BlockImage     BlockKind = "image"
	BlockVideo     BlockKind = "video"
)

// Marks are the inline styles a span can carry.
type Marks struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Size   int    `json:"size,omitempty"`  // 1..7, 0 = inherited
	Color  string `json:"color,omitempty"` // "#rrggbb" or "#rgb"
}

// IsZero reports whether no style is applied.
func (m Marks) IsZero() bool {
	return m == Marks{}
}

type Span struct {
	Text  string `json:"text"`
	Marks Marks  `json:"marks,omitempty"`
}

type Block struct {
	Kind  BlockKind `json:"kind"`
	Level int       `json:"level,omitempty"` // heading level 1..6
	Spans []Span    `json:"spans,omitempty"`
	Src   string    `json:"src,omitempty"` // image data URI or video embed URL
}

// IsText reports whether the block holds spans (as opposed to an embed).
func (b Block) IsText() bool {
	switch b.Kind {
	case BlockParagraph, BlockHeading, BlockListItem:
		return true
	}
	return false
}

// Text concatenates the block's spans.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Len is the block length in runes. Embeds have length 0.
func (b Block) Len() int {
	n := 0
	for _, s := range b.Spans {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

func (b Block) Clone() Block {
	b.Spans = slices.Clone(b.Spans)
	return b
}

// Paragraph builds a paragraph from plain text.
func Paragraph(text string) Block {
	b := Block{Kind: BlockParagraph}
	if text != "" {
		b.Spans = []Span{{Text: text}}
	}
	return b
}

type Document struct {
	Blocks []Block `json:"blocks"`
}

func (d Document) Clone() Document {
	blocks := make([]Block, len(d.Blocks))
	for i, b := range d.Blocks {
		blocks[i] = b.Clone()
	}
	return Document{Blocks: blocks}
}

// IsEmpty reports whether the document has no visible content.
func (d Document) IsEmpty() bool {
	for _, b := range d.Blocks {
		if !b.IsText() || strings.TrimSpace(b.Text()) != "" {
			return false
		}
	}
	return true
}

// End is the caret position after the last character.
func (d Document) End() Position {
	if len(d.Blocks) == 0 {
		return Position{}
	}
	last := len(d.Blocks) - 1
	return Position{Block: last, Offset: d.Blocks[last].Len()}
}

// Clamp moves p inside the document.
func (d Document) Clamp(p Position) Position {
	if len(d.Blocks) == 0 {
		return Position{}
	}
	if p.Block < 0 {
		return Position{}
	}
	if p.Block >= len(d.Blocks) {
		return d.End()
	}
	p.Offset = max(0, min(p.Offset, d.Blocks[p.Block].Len()))
	return p
}

// ClampRange clamps both ends of r.
func (d Document) ClampRange(r Range) Range {
	return NewRange(d.Clamp(r.Start), d.Clamp(r.End))
}
