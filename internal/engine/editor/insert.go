package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/mathedit/internal/engine/command"
	"github.com/dshills/mathedit/internal/formula"
)

// tokenTag picks the token element for freshly typed text.
func tokenTag(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	switch {
	case unicode.IsDigit(r):
		return "mn"
	case unicode.IsLetter(r):
		return "mi"
	}
	return "mo"
}

// finish stamps the cursor the command restores on undo.
func (e *Editor) finish(cmd command.Command) command.Command {
	cmd.SetUndoCursor(e.cursor)
	return cmd
}

// InsertText returns a command typing s at the cursor, replacing the
// selection if there is one. Text typed into a row becomes a new token;
// digits typed right after a number extend it.
func (e *Editor) InsertText(s string) command.Command {
	if e.normalize {
		s = norm.NFC.String(s)
	}
	s = strings.ReplaceAll(s, string(formula.GlyphMarker), "")
	if s == "" {
		return nil
	}
	c := e.cursor
	switch el := c.CurrentElement().(type) {
	case *formula.Token:
		return e.insertIntoToken(el, s)
	default:
		if el.IsInferredRow() {
			return e.insertIntoRow(el, s)
		}
	}
	return nil
}

func (e *Editor) insertIntoToken(t *formula.Token, s string) command.Command {
	c := e.cursor
	parent := t.Parent()
	tag := tokenTag(s)
	if parent != nil && parent.IsInferredRow() && t.Tag() != tag && !c.HasSelection() {
		idx := parent.PositionOfChild(t)
		switch {
		case t.IsEmpty():
			// A placeholder takes the type of whatever is typed into it.
			return e.newTokenCommand(parent, idx, 1, tag, s)
		case c.Position() == 0:
			return e.newTokenCommand(parent, idx, 0, tag, s)
		case c.Position() == t.Len():
			return e.newTokenCommand(parent, idx+1, 0, tag, s)
		}
	}
	start, end := c.Selection()
	return e.finish(command.NewReplaceText(t, start, end-start, s))
}

func (e *Editor) insertIntoRow(row formula.Element, s string) command.Command {
	c := e.cursor
	tag := tokenTag(s)
	if c.HasSelection() {
		start, end := c.Selection()
		return e.newTokenCommand(row, start, end-start, tag, s)
	}
	pos := c.Position()
	// Text typed next to a placeholder fills it.
	switch {
	case formula.IsPlaceholder(row.ElementAfter(pos)):
		return e.newTokenCommand(row, pos, 1, tag, s)
	case formula.IsPlaceholder(row.ElementBefore(pos)):
		return e.newTokenCommand(row, pos-1, 1, tag, s)
	}
	if prev, ok := row.ElementBefore(pos).(*formula.Token); ok && tag == "mn" && prev.Tag() == "mn" && prev.Attributes().Len() == 0 {
		cmd := command.NewReplaceText(prev, prev.Len(), 0, s)
		cmd.SetRedoCursor(formula.NewCursor(row, pos))
		return e.finish(cmd)
	}
	return e.newTokenCommand(row, pos, 0, tag, s)
}

// newTokenCommand replaces length children of row at pos with a new token
// holding s and leaves the cursor at the token's end.
func (e *Editor) newTokenCommand(row formula.Element, pos, length int, tag, s string) command.Command {
	tok := formula.NewTokenText(tag, s)
	cmd := command.NewReplaceElements(row, pos, length, []formula.Element{tok}, false)
	cmd.SetRedoCursor(formula.NewCursor(tok, tok.Len()))
	return e.finish(cmd)
}

// InsertElement returns a command inserting el at the cursor. A selection
// is wrapped into the first placeholder of el. The cursor must be inside a
// row or inside a placeholder token; otherwise nil is returned.
func (e *Editor) InsertElement(el formula.Element) command.Command {
	return e.InsertElements([]formula.Element{el})
}

// InsertElements is InsertElement for a sequence of detached elements.
func (e *Editor) InsertElements(els []formula.Element) command.Command {
	if len(els) == 0 {
		return nil
	}
	c := e.cursor
	cur := c.CurrentElement()

	if t, ok := cur.(*formula.Token); ok {
		parent := t.Parent()
		if !t.IsEmpty() || parent == nil || !parent.IsInferredRow() {
			return nil
		}
		idx := parent.PositionOfChild(t)
		cmd := command.NewReplaceElements(parent, idx, 1, els, false)
		cmd.SetRedoCursor(entryCursor(parent, idx, els))
		return e.finish(cmd)
	}

	if !cur.IsInferredRow() {
		return nil
	}
	start, end := c.Selection()
	return e.finish(command.NewReplaceElements(cur, start, end-start, els, true))
}

// entryCursor returns where to continue after inserting els into row at
// pos: inside the first placeholder if there is one, after els otherwise.
func entryCursor(row formula.Element, pos int, els []formula.Element) formula.Cursor {
	for _, el := range els {
		if p := formula.EmptyDescendant(el); p != nil {
			if _, ok := p.(*formula.Token); ok {
				return formula.NewCursor(p, 0)
			}
			return formula.NewCursor(p.Parent(), p.Parent().PositionOfChild(p))
		}
	}
	return formula.NewCursor(row, pos+len(els))
}

// InsertMarkup parses a MathML fragment and returns a command inserting it
// at the cursor. A nil command with a nil error means the cursor cannot take
// the content.
func (e *Editor) InsertMarkup(markup string) (command.Command, error) {
	els, err := formula.ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	return e.InsertElements(els), nil
}

// InsertTemplate returns a command inserting an empty element for tag, with
// placeholders in its slots.
func (e *Editor) InsertTemplate(tag string) command.Command {
	switch formula.KindOf(tag) {
	case formula.KindUnknown, formula.KindFormula, formula.KindTableRow, formula.KindTableData:
		return nil
	}
	return e.InsertElement(formula.NewTemplate(tag))
}

// Load parses a complete formula and returns a command replacing the
// document root with it.
func (e *Editor) Load(markup string) (command.Command, error) {
	root, err := formula.ParseMarkup(markup)
	if err != nil {
		return nil, err
	}
	return e.finish(command.NewLoad(e.doc, root)), nil
}
