package formula

import (
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Formula is the <math> root of a formula tree.
type Formula struct {
	Row
}

// NewFormula creates an empty formula.
func NewFormula() *Formula {
	f := &Formula{}
	f.init("math", f)
	return f
}

// ReadMarkup reads a <math> element. A single top level mrow is unwrapped
// into the formula itself.
func (f *Formula) ReadMarkup(n *html.Node) error {
	readAttributes(&f.attrs, n)
	var only *html.Node
	count := 0
	for c := range elementChildren(n) {
		only = c
		count++
	}
	if count == 1 && only.Data == "mrow" && len(only.Attr) == 0 {
		return readChildren(f, only)
	}
	return readChildren(f, n)
}

// Document owns the current formula root.
type Document struct {
	id       uuid.UUID
	root     *Formula
	revision atomic.Uint64
}

// NewDocument creates a document holding an empty formula.
func NewDocument() *Document {
	return &Document{id: uuid.New(), root: NewFormula()}
}

// NewDocumentFromMarkup creates a document from MathML.
func NewDocumentFromMarkup(markup string) (*Document, error) {
	root, err := ParseMarkup(markup)
	if err != nil {
		return nil, err
	}
	d := NewDocument()
	d.root = root
	return d, nil
}

// ID returns the document identifier.
func (d *Document) ID() uuid.UUID { return d.id }

// Root returns the current root.
func (d *Document) Root() *Formula { return d.root }

// SetRoot swaps the root and returns the previous one.
func (d *Document) SetRoot(root *Formula) *Formula {
	old := d.root
	d.root = root
	d.Touch()
	return old
}

// Revision returns a counter bumped on every change.
func (d *Document) Revision() uint64 { return d.revision.Load() }

// Touch records a change.
func (d *Document) Touch() { d.revision.Add(1) }
