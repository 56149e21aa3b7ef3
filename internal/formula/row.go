package formula

import (
	"slices"

	"golang.org/x/net/html"
)

// Row is an ordered sequence of elements. Its positions are the gaps
// between children, so a row with n children has positions 0..n.
//
// Row is used for mrow and for the row-like containers that MathML treats as
// an inferred mrow (mstyle, mpadded, mphantom, menclose, merror). Formula and
// TableData embed it.
type Row struct {
	base
	children []Element
}

// NewRow creates an empty mrow.
func NewRow() *Row {
	return NewRowWithTag("mrow")
}

// NewRowWithTag creates an empty row-like container with the given tag.
func NewRowWithTag(tag string) *Row {
	r := &Row{}
	r.init(tag, r)
	return r
}

// Len returns the number of children.
func (r *Row) Len() int { return len(r.children) }

// Child returns the child at index i.
func (r *Row) Child(i int) Element { return r.children[i] }

// ChildElements returns a copy of the children.
func (r *Row) ChildElements() []Element { return slices.Clone(r.children) }

// EndPosition returns the number of children.
func (r *Row) EndPosition() int { return len(r.children) }

// ElementBefore returns the child left of pos.
func (r *Row) ElementBefore(pos int) Element {
	if pos <= 0 || pos > len(r.children) {
		return nil
	}
	return r.children[pos-1]
}

// ElementAfter returns the child right of pos.
func (r *Row) ElementAfter(pos int) Element {
	if pos < 0 || pos >= len(r.children) {
		return nil
	}
	return r.children[pos]
}

// PositionOfChild returns the index of child, or -1.
func (r *Row) PositionOfChild(child Element) int {
	for i, c := range r.children {
		if c == child {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the row has no children.
func (r *Row) IsEmpty() bool { return len(r.children) == 0 }

// IsInferredRow always reports true.
func (r *Row) IsInferredRow() bool { return true }

// AcceptCursor accepts every position.
func (r *Row) AcceptCursor(Cursor) bool { return true }

// IsPlain reports whether the row is an attribute free mrow that adds
// nothing to the rendering and may be collapsed.
func (r *Row) IsPlain() bool {
	return r.tag == "mrow" && r.attrs.Len() == 0
}

func rowChildAllowed(e Element) bool {
	switch e.(type) {
	case *Formula, *TableRow, *TableData:
		return false
	}
	return true
}

// InsertChild inserts child at pos.
func (r *Row) InsertChild(pos int, child Element) bool {
	if pos < 0 || pos > len(r.children) {
		return false
	}
	adopt(r.self, child, rowChildAllowed)
	r.children = slices.Insert(r.children, pos, child)
	return true
}

// RemoveChild detaches child.
func (r *Row) RemoveChild(child Element) bool {
	i := r.PositionOfChild(child)
	if i < 0 {
		return false
	}
	r.children = slices.Delete(r.children, i, i+1)
	child.setParent(nil)
	return true
}

// ReplaceChild swaps old for replacement at the same index.
func (r *Row) ReplaceChild(old, replacement Element) bool {
	i := r.PositionOfChild(old)
	if i < 0 {
		return false
	}
	old.setParent(nil)
	adopt(r.self, replacement, rowChildAllowed)
	r.children[i] = replacement
	return true
}

// MoveCursor moves between gaps. Without selection, moving into a child
// descends into it: tokens are entered one grapheme in, placeholders at
// their only position, nested rows and fixed or table elements at their near
// edge.
func (r *Row) MoveCursor(c *Cursor, old Cursor) bool {
	pos := c.Position()
	n := len(r.children)

	if c.IsSelecting() {
		switch c.Direction() {
		case MoveLeft:
			if pos == 0 {
				return false
			}
			c.SetPosition(pos - 1)
		case MoveRight:
			if pos >= n {
				return false
			}
			c.SetPosition(pos + 1)
		default:
			return false
		}
		return true
	}

	switch c.Direction() {
	case MoveLeft:
		if pos == 0 {
			return false
		}
		r.enterChild(c, r.children[pos-1], true, pos-1)
	case MoveRight:
		if pos >= n {
			return false
		}
		r.enterChild(c, r.children[pos], false, pos+1)
	default:
		return false
	}
	return true
}

// enterChild moves c into child from its near edge, or steps over it to skip
// when the child has nowhere to stop.
func (r *Row) enterChild(c *Cursor, child Element, fromRight bool, skip int) {
	switch x := child.(type) {
	case *Token:
		if x.IsEmpty() {
			c.SetCurrentElement(x)
			c.SetPosition(0)
			return
		}
		var stop int
		if fromRight {
			stop = x.PreviousStop(x.Len())
		} else {
			stop = x.NextStop(0)
		}
		if stop > 0 && stop < x.Len() {
			c.SetCurrentElement(x)
			c.SetPosition(stop)
			return
		}
	case *Basic:
	default:
		saved := *c
		enter(c, child, fromRight)
		if !child.IsInferredRow() {
			// Fixed and table elements resolve the entry point themselves.
			return
		}
		if child.MoveCursor(c, saved) {
			return
		}
		*c = saved
	}
	c.SetPosition(skip)
}

// SetCursorTo places the cursor in the gap or child nearest to p.
func (r *Row) SetCursorTo(c *Cursor, p Point) bool {
	for i, child := range r.children {
		g := child.Geometry()
		if g.Contains(p) {
			if _, ok := child.(*Basic); !ok && child.SetCursorTo(c, p) {
				return true
			}
			c.SetCurrentElement(r.self)
			if p.X < g.Origin.X+g.Width/2 {
				c.SetPosition(i)
			} else {
				c.SetPosition(i + 1)
			}
			return true
		}
	}
	c.SetCurrentElement(r.self)
	for i, child := range r.children {
		g := child.Geometry()
		if p.X < g.Origin.X+g.Width/2 {
			c.SetPosition(i)
			return true
		}
	}
	c.SetPosition(len(r.children))
	return true
}

// ReadMarkup reads the attributes and children of n.
func (r *Row) ReadMarkup(n *html.Node) error {
	readAttributes(&r.attrs, n)
	return readChildren(r.self, n)
}

// WriteMarkup writes the row and its children.
func (r *Row) WriteMarkup(w *MarkupWriter) {
	w.StartElement(r.tag, &r.attrs)
	for _, c := range r.children {
		c.WriteMarkup(w)
	}
	w.EndElement()
}

// readChildren creates an element for every element child of n and appends
// it to parent.
func readChildren(parent Element, n *html.Node) error {
	for child := range elementChildren(n) {
		e, err := readElement(child)
		if err != nil {
			return err
		}
		if parent.IsInferredRow() && !rowChildAllowed(e) {
			return markupErrorf(parent.Tag(), "cannot contain <%s>", e.Tag())
		}
		if !parent.InsertChild(parent.EndPosition(), e) {
			return markupErrorf(parent.Tag(), "cannot contain <%s>", e.Tag())
		}
	}
	return nil
}
