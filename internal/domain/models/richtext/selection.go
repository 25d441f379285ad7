package richtext

// Position is a caret location: a block index and a rune offset inside it.
type Position struct {
	Block  int `json:"block"`
	Offset int `json:"offset"`
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Block != q.Block {
		return p.Block < q.Block
	}
	return p.Offset < q.Offset
}

// Range is a selection with Start never after End.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange orders a and b.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Caret is a collapsed range at p.
func Caret(p Position) Range {
	return Range{Start: p, End: p}
}

func (r Range) Collapsed() bool {
	return r.Start == r.End
}
