package richtext

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"helpcenter/internal/domain"
	"helpcenter/internal/domain/models/richtext"
)

// CommandKind names a toolbar action.
type CommandKind string

const (
	CommandBold   CommandKind = "bold"
	CommandItalic CommandKind = "italic"
	CommandList   CommandKind = "list"
	CommandSize   CommandKind = "size"
	CommandColor  CommandKind = "color"
	CommandGlyph  CommandKind = "glyph"
	CommandImage  CommandKind = "image"
	CommandVideo  CommandKind = "video"
)

// Glyphs are the quick-insert characters on the toolbar.
var Glyphs = []string{"₽", "😊", "→"}

const maxGlyphRunes = 8

// Command is one toolbar action. Value carries the size, colour, glyph or
// video URL; Data carries uploaded image bytes.
type Command struct {
	Kind  CommandKind
	Value string
	Data  []byte
}

// Editor is an editing session over a document.
type Editor struct {
	Doc       richtext.Document
	Selection richtext.Range
}

// NewEditor starts a session with the caret at the end of doc.
func NewEditor(doc richtext.Document) *Editor {
	return &Editor{Doc: doc, Selection: richtext.Caret(doc.End())}
}

// Select moves the selection, clamped into the document.
func (e *Editor) Select(r richtext.Range) {
	e.Selection = e.Doc.ClampRange(r)
}

// Execute applies cmd at the current selection. Insertions replace nothing:
// they happen at the selection end and collapse the selection after them.
func (e *Editor) Execute(cmd Command) error {
	e.Selection = e.Doc.ClampRange(e.Selection)

	switch cmd.Kind {
	case CommandBold:
		ToggleBold(&e.Doc, e.Selection)
	case CommandItalic:
		ToggleItalic(&e.Doc, e.Selection)
	case CommandList:
		ToggleList(&e.Doc, e.Selection)
	case CommandSize:
		size, err := strconv.Atoi(cmd.Value)
		if err != nil {
			return fmt.Errorf("%w: font size %q", domain.ErrValidation, cmd.Value)
		}
		if err := SetFontSize(&e.Doc, e.Selection, size); err != nil {
			return err
		}
	case CommandColor:
		if err := SetColor(&e.Doc, e.Selection, cmd.Value); err != nil {
			return err
		}
	case CommandGlyph:
		if cmd.Value == "" || utf8.RuneCountInString(cmd.Value) > maxGlyphRunes {
			return fmt.Errorf("%w: glyph must be 1-%d characters", domain.ErrValidation, maxGlyphRunes)
		}
		e.Selection = richtext.Caret(InsertText(&e.Doc, e.Selection.End, cmd.Value))
	case CommandImage:
		block, err := ImageBlock(cmd.Data)
		if err != nil {
			return err
		}
		e.Selection = richtext.Caret(InsertBlock(&e.Doc, e.Selection.End, block))
	case CommandVideo:
		block, err := VideoBlock(cmd.Value)
		if err != nil {
			return err
		}
		e.Selection = richtext.Caret(InsertBlock(&e.Doc, e.Selection.End, block))
	default:
		return fmt.Errorf("%w: unknown editor command %q", domain.ErrValidation, cmd.Kind)
	}

	e.Selection = e.Doc.ClampRange(e.Selection)
	return nil
}
