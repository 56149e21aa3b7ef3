package editor

import (
	"github.com/dshills/mathedit/internal/formula"
)

// Option configures an Editor.
type Option func(*Editor)

// WithNormalization enables or disables NFC normalization of inserted text.
func WithNormalization(enabled bool) Option {
	return func(e *Editor) {
		e.normalize = enabled
	}
}

// Editor is a stateful editing session over one document.
type Editor struct {
	doc       *formula.Document
	cursor    formula.Cursor
	normalize bool
}

// New creates an editor with the cursor at the start of the document root.
func New(doc *formula.Document, opts ...Option) *Editor {
	e := &Editor{
		doc:       doc,
		normalize: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cursor = formula.NewCursor(doc.Root(), 0)
	return e
}

// Document returns the edited document.
func (e *Editor) Document() *formula.Document { return e.doc }

// Cursor returns a copy of the live cursor.
func (e *Editor) Cursor() formula.Cursor { return e.cursor }

// SetCursor replaces the live cursor. Cursors outside the document or not
// accepted by their element are ignored and false is returned.
func (e *Editor) SetCursor(c formula.Cursor) bool {
	if !c.IsAccepted() || !e.inDocument(c.CurrentElement()) {
		return false
	}
	e.cursor = c
	return true
}

// Reset moves the cursor to the start of the document root.
func (e *Editor) Reset() {
	e.cursor = formula.NewCursor(e.doc.Root(), 0)
}

func (e *Editor) inDocument(el formula.Element) bool {
	return formula.HasDescendant(e.doc.Root(), el)
}

// Move moves the cursor one step in d. With selecting set the selection is
// extended; otherwise any selection is dropped first. It reports whether the
// cursor changed.
func (e *Editor) Move(d formula.Direction, selecting bool) bool {
	c := e.cursor
	dropped := c.IsSelecting() && !selecting
	c.SetSelecting(selecting)
	moved := c.Move(d)
	if moved || dropped {
		e.cursor = c
	}
	return moved
}

// SetCursorTo places the cursor at the position nearest to p. Geometry must
// have been computed for the tree.
func (e *Editor) SetCursorTo(p formula.Point) {
	e.cursor = formula.SetCursorTo(e.doc.Root(), p)
}

// Selected returns the selected children when the cursor selects a span of
// a row, or nil.
func (e *Editor) Selected() []formula.Element {
	c := e.cursor
	if !c.HasSelection() || !c.InsideInferredRow() {
		return nil
	}
	start, end := c.Selection()
	out := make([]formula.Element, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, c.CurrentElement().ElementAfter(i))
	}
	return out
}
