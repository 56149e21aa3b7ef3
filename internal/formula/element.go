package formula

import (
	"fmt"

	"golang.org/x/net/html"
)

// Element is a node of the formula tree.
//
// Positions inside an element run from 0 to EndPosition. How a position maps
// to children, and whether a cursor may rest there, is up to the element.
type Element interface {
	// Tag returns the MathML tag the element reads and writes.
	Tag() string

	// Parent returns the containing element, or nil for a root or detached element.
	Parent() Element

	// ChildElements returns the children in document order.
	ChildElements() []Element

	// EndPosition returns the last valid cursor position.
	EndPosition() int

	// ElementBefore returns the child immediately left of pos, or nil.
	ElementBefore(pos int) Element

	// ElementAfter returns the child immediately right of pos, or nil.
	ElementAfter(pos int) Element

	// PositionOfChild returns the position immediately before child, or -1.
	PositionOfChild(child Element) int

	// IsEmpty reports whether the element is structurally empty.
	IsEmpty() bool

	// IsInferredRow reports whether gaps between children are insertion points.
	IsInferredRow() bool

	// AcceptCursor reports whether c may rest inside this element.
	AcceptCursor(c Cursor) bool

	// MoveCursor moves c one step in its direction within this element.
	// old is the cursor before the whole move started. It returns false when
	// the move has to be handled by the parent.
	MoveCursor(c *Cursor, old Cursor) bool

	// SetCursorTo places c at the position closest to p.
	SetCursorTo(c *Cursor, p Point) bool

	// ReplaceChild swaps old for replacement. It returns false if old is not a child.
	ReplaceChild(old, replacement Element) bool

	// InsertChild inserts child at pos. It returns false for fixed arity elements.
	InsertChild(pos int, child Element) bool

	// RemoveChild detaches child. It returns false if child is not a child.
	RemoveChild(child Element) bool

	// Attributes returns the element's own attributes.
	Attributes() *Attributes

	// Attribute resolves name through own, inherited and default values.
	Attribute(name string) string

	// Geometry returns the layout box, filled in by a layout pass.
	Geometry() *Geometry

	// ReadMarkup populates the element from a parsed node.
	ReadMarkup(n *html.Node) error

	// WriteMarkup serializes the element.
	WriteMarkup(w *MarkupWriter)

	setParent(p Element)
}

// base holds the state shared by every element kind.
type base struct {
	tag      string
	self     Element
	parent   Element
	attrs    Attributes
	geometry Geometry
}

func (b *base) init(tag string, self Element) {
	b.tag = tag
	b.self = self
}

// Tag returns the MathML tag.
func (b *base) Tag() string { return b.tag }

// Parent returns the containing element.
func (b *base) Parent() Element { return b.parent }

func (b *base) setParent(p Element) { b.parent = p }

// Attributes returns the element's own attributes.
func (b *base) Attributes() *Attributes { return &b.attrs }

// Attribute resolves an attribute value.
func (b *base) Attribute(name string) string { return resolveAttribute(b.self, name) }

// Geometry returns the layout box.
func (b *base) Geometry() *Geometry { return &b.geometry }

// adopt attaches child to parent after checking the tree invariants.
// Violations are programming errors and panic.
func adopt(parent, child Element, allowed func(Element) bool) {
	if child == nil {
		panic(fmt.Sprintf("formula: nil child for <%s>", parent.Tag()))
	}
	if child.Parent() != nil {
		panic(fmt.Sprintf("formula: <%s> already has a parent", child.Tag()))
	}
	if allowed != nil && !allowed(child) {
		panic(fmt.Sprintf("formula: <%s> cannot contain <%s>", parent.Tag(), child.Tag()))
	}
	if HasDescendant(child, parent) {
		panic(fmt.Sprintf("formula: inserting <%s> would create a cycle", child.Tag()))
	}
	child.setParent(parent)
}

// HasDescendant reports whether d is e or lies below it.
func HasDescendant(e, d Element) bool {
	if e == nil || d == nil {
		return false
	}
	for p := d; p != nil; p = p.Parent() {
		if p == e {
			return true
		}
	}
	return false
}

// Basic is a leaf element without cursor positions, such as mspace or a tag
// the editor does not model. Unknown content is kept verbatim and written
// back unchanged.
type Basic struct {
	base
	raw []*html.Node
}

// NewBasic creates a leaf element with the given tag.
func NewBasic(tag string) *Basic {
	b := &Basic{}
	b.init(tag, b)
	return b
}

func (b *Basic) ChildElements() []Element { return nil }
func (b *Basic) EndPosition() int { return 0 }
func (b *Basic) ElementBefore(int) Element { return nil }
func (b *Basic) ElementAfter(int) Element { return nil }
func (b *Basic) PositionOfChild(Element) int { return -1 }
func (b *Basic) IsEmpty() bool { return false }
func (b *Basic) IsInferredRow() bool { return false }
func (b *Basic) AcceptCursor(Cursor) bool { return false }
func (b *Basic) MoveCursor(*Cursor, Cursor) bool { return false }
func (b *Basic) SetCursorTo(*Cursor, Point) bool { return false }
func (b *Basic) ReplaceChild(_, _ Element) bool { return false }
func (b *Basic) InsertChild(int, Element) bool { return false }
func (b *Basic) RemoveChild(Element) bool { return false }

// ReadMarkup keeps the attributes and a copy of the node's content.
func (b *Basic) ReadMarkup(n *html.Node) error {
	readAttributes(&b.attrs, n)
	b.raw = nil
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.raw = append(b.raw, cloneNode(c))
	}
	return nil
}

// WriteMarkup writes the element with its preserved content.
func (b *Basic) WriteMarkup(w *MarkupWriter) {
	w.StartElement(b.tag, &b.attrs)
	for _, n := range b.raw {
		w.Raw(cloneNode(n))
	}
	w.EndElement()
}
