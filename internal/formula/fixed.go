package formula

import (
	"slices"

	"golang.org/x/net/html"
)

// slotNavigator describes how the cursor travels between the slots of a
// fixed arity element.
type slotNavigator interface {
	// horizontalSlots lists the slot indexes visited by left and right
	// movement, in visual order.
	horizontalSlots() []int

	// verticalSlot returns the slot reached from slot from when moving in d.
	verticalSlot(from int, d Direction) (int, bool)
}

// fixed is the shared part of elements with a fixed set of slots. Each slot
// is an inferred row. Position 2i is before slot i and 2i+1 after it.
type fixed struct {
	base
	nav   slotNavigator
	slots []*Row
}

func (f *fixed) initSlots(tag string, self Element, nav slotNavigator, n int) {
	f.init(tag, self)
	f.nav = nav
	f.slots = make([]*Row, n)
	for i := range f.slots {
		f.slots[i] = f.newSlot()
	}
}

func (f *fixed) newSlot() *Row {
	r := NewRow()
	r.setParent(f.self)
	return r
}

func (f *fixed) slotRows() []*Row { return f.slots }

// Slot returns slot i.
func (f *fixed) Slot(i int) *Row { return f.slots[i] }

// SlotCount returns the number of slots.
func (f *fixed) SlotCount() int { return len(f.slots) }

// ChildElements returns the slots.
func (f *fixed) ChildElements() []Element {
	out := make([]Element, len(f.slots))
	for i, s := range f.slots {
		out[i] = s
	}
	return out
}

// EndPosition returns 2n-1 for n slots.
func (f *fixed) EndPosition() int {
	if len(f.slots) == 0 {
		return 0
	}
	return 2*len(f.slots) - 1
}

// ElementBefore returns the slot ending at pos.
func (f *fixed) ElementBefore(pos int) Element {
	if pos%2 == 1 && pos/2 < len(f.slots) {
		return f.slots[pos/2]
	}
	return nil
}

// ElementAfter returns the slot starting at pos.
func (f *fixed) ElementAfter(pos int) Element {
	if pos >= 0 && pos%2 == 0 && pos/2 < len(f.slots) {
		return f.slots[pos/2]
	}
	return nil
}

// PositionOfChild returns 2i for slot i.
func (f *fixed) PositionOfChild(child Element) int {
	for i, s := range f.slots {
		if Element(s) == child {
			return 2 * i
		}
	}
	return -1
}

func (f *fixed) slotIndex(child Element) int {
	for i, s := range f.slots {
		if Element(s) == child {
			return i
		}
	}
	return -1
}

func (f *fixed) IsEmpty() bool { return false }
func (f *fixed) IsInferredRow() bool { return false }

// AcceptCursor only accepts a selecting cursor, which selects whole slots.
func (f *fixed) AcceptCursor(c Cursor) bool { return c.IsSelecting() }

// MoveCursor routes the cursor between slots. A selecting cursor is always
// passed up so the element gets selected as a whole.
func (f *fixed) MoveCursor(c *Cursor, old Cursor) bool {
	if c.IsSelecting() {
		return false
	}
	pos := c.Position()
	order := f.nav.horizontalSlots()
	if len(order) == 0 {
		return false
	}

	switch d := c.Direction(); d {
	case MoveRight:
		if pos == 0 {
			enter(c, f.slots[order[0]], false)
			return true
		}
		if pos%2 == 0 {
			return false
		}
		k := slices.Index(order, pos/2)
		if k < 0 || k+1 >= len(order) {
			return false
		}
		enter(c, f.slots[order[k+1]], false)
		return true

	case MoveLeft:
		if pos == f.EndPosition() {
			enter(c, f.slots[order[len(order)-1]], true)
			return true
		}
		if pos%2 == 1 {
			return false
		}
		k := slices.Index(order, pos/2)
		if k <= 0 {
			return false
		}
		enter(c, f.slots[order[k-1]], true)
		return true

	case MoveUp, MoveDown:
		to, ok := f.nav.verticalSlot(pos/2, d)
		if !ok {
			return false
		}
		enterVertically(c, f.slots[to], old)
		return true
	}
	return false
}

// SetCursorTo delegates to the slot containing p, or the nearest one.
func (f *fixed) SetCursorTo(c *Cursor, p Point) bool {
	if len(f.slots) == 0 {
		return false
	}
	best := f.slots[0]
	bestDist := best.geometry.distance(p)
	for _, s := range f.slots {
		if s.geometry.Contains(p) {
			return s.SetCursorTo(c, p)
		}
		if d := s.geometry.distance(p); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best.SetCursorTo(c, p)
}

// ReplaceChild swaps a slot for another row.
func (f *fixed) ReplaceChild(old, replacement Element) bool {
	i := f.slotIndex(old)
	if i < 0 {
		return false
	}
	row, ok := replacement.(*Row)
	if !ok {
		panic("formula: slots of <" + f.tag + "> must be rows")
	}
	old.setParent(nil)
	adopt(f.self, row, nil)
	f.slots[i] = row
	return true
}

// InsertChild is not supported by fixed arity elements.
func (f *fixed) InsertChild(int, Element) bool { return false }

// RemoveChild is not supported by fixed arity elements.
func (f *fixed) RemoveChild(Element) bool { return false }

// readSlots reads exactly len(f.slots) element children of n, one per slot.
func (f *fixed) readSlots(n *html.Node) error {
	readAttributes(&f.attrs, n)
	i := 0
	for child := range elementChildren(n) {
		if i >= len(f.slots) {
			return markupErrorf(f.tag, "expected %d children", len(f.slots))
		}
		if err := readSlot(f.slots[i], child); err != nil {
			return err
		}
		i++
	}
	if i != len(f.slots) {
		return markupErrorf(f.tag, "expected %d children, found %d", len(f.slots), i)
	}
	return nil
}

// readSlot fills slot from a single MathML argument. An explicit mrow becomes
// the slot itself; any other element becomes its only child.
func readSlot(slot *Row, n *html.Node) error {
	if n.Data == "mrow" {
		return slot.ReadMarkup(n)
	}
	if n.Data == "none" {
		return nil
	}
	e, err := readElement(n)
	if err != nil {
		return err
	}
	if !rowChildAllowed(e) {
		return markupErrorf(n.Data, "not allowed as an argument")
	}
	slot.InsertChild(0, e)
	return nil
}

// writeSlots writes the element with one argument per slot.
func (f *fixed) writeSlots(w *MarkupWriter) {
	w.StartElement(f.tag, &f.attrs)
	for _, s := range f.slots {
		writeSlot(w, s)
	}
	w.EndElement()
}

// writeSlot writes slot as a single MathML argument: its only child when it
// has exactly one and nothing to carry, an mrow otherwise.
func writeSlot(w *MarkupWriter, slot *Row) {
	if slot.Len() == 1 && slot.attrs.Len() == 0 {
		slot.children[0].WriteMarkup(w)
		return
	}
	slot.WriteMarkup(w)
}
