package formula

import "fmt"

// Direction is the direction of a cursor move.
type Direction uint8

// Cursor movement directions.
const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Horizontal reports whether d is left or right.
func (d Direction) Horizontal() bool {
	return d == MoveLeft || d == MoveRight
}

// Cursor is a position inside the formula tree with an optional selection.
//
// Cursor is a value type; copies are independent. A selection spans from
// mark to position within the same element. When not selecting, mark
// always equals position.
type Cursor struct {
	element   Element
	position  int
	mark      int
	selecting bool
	direction Direction
}

// NewCursor returns a cursor at pos inside e.
func NewCursor(e Element, pos int) Cursor {
	return Cursor{element: e, position: pos, mark: pos}
}

// NewSelection returns a selecting cursor covering mark..pos inside e.
func NewSelection(e Element, mark, pos int) Cursor {
	return Cursor{element: e, position: pos, mark: mark, selecting: true}
}

// CurrentElement returns the element the cursor is in.
func (c Cursor) CurrentElement() Element { return c.element }

// Position returns the cursor position.
func (c Cursor) Position() int { return c.position }

// Mark returns the selection anchor.
func (c Cursor) Mark() int { return c.mark }

// IsSelecting reports whether the cursor extends a selection when moving.
func (c Cursor) IsSelecting() bool { return c.selecting }

// Direction returns the direction of the last or ongoing move.
func (c Cursor) Direction() Direction { return c.direction }

// IsValid reports whether the cursor points into an element.
func (c Cursor) IsValid() bool { return c.element != nil }

// SetCurrentElement moves the cursor into e without changing positions.
func (c *Cursor) SetCurrentElement(e Element) { c.element = e }

// SetPosition sets the position. When not selecting the mark follows.
func (c *Cursor) SetPosition(pos int) {
	c.position = pos
	if !c.selecting {
		c.mark = pos
	}
}

// SetMark sets the selection anchor.
func (c *Cursor) SetMark(mark int) { c.mark = mark }

// SetSelecting switches selection mode. Entering selection mode anchors the
// mark at the current position; leaving it collapses the selection.
func (c *Cursor) SetSelecting(on bool) {
	if on == c.selecting {
		return
	}
	c.selecting = on
	c.mark = c.position
}

// SetDirection sets the movement direction.
func (c *Cursor) SetDirection(d Direction) { c.direction = d }

// Selection returns the selected interval as (start, end).
func (c Cursor) Selection() (int, int) {
	if c.mark < c.position {
		return c.mark, c.position
	}
	return c.position, c.mark
}

// HasSelection reports whether a non-empty range is selected.
func (c Cursor) HasSelection() bool {
	return c.selecting && c.mark != c.position
}

// IsHome reports whether the cursor is at position 0.
func (c Cursor) IsHome() bool { return c.position == 0 }

// IsEnd reports whether the cursor is at the element's end position.
func (c Cursor) IsEnd() bool {
	return c.element != nil && c.position == c.element.EndPosition()
}

// MoveHome moves to position 0.
func (c *Cursor) MoveHome() { c.SetPosition(0) }

// MoveEnd moves to the element's end position.
func (c *Cursor) MoveEnd() { c.SetPosition(c.element.EndPosition()) }

// IsAccepted reports whether the cursor is in range and its element accepts it.
func (c Cursor) IsAccepted() bool {
	if c.element == nil {
		return false
	}
	end := c.element.EndPosition()
	if c.position < 0 || c.position > end || c.mark < 0 || c.mark > end {
		return false
	}
	return c.element.AcceptCursor(c)
}

// InsideToken reports whether the cursor is inside a Token.
func (c Cursor) InsideToken() bool {
	_, ok := c.element.(*Token)
	return ok
}

// InsideInferredRow reports whether the cursor is inside an inferred row.
func (c Cursor) InsideInferredRow() bool {
	return c.element != nil && c.element.IsInferredRow()
}

// InsideFixedElement reports whether the cursor is directly inside a fixed
// arity element, which only happens while selecting.
func (c Cursor) InsideFixedElement() bool {
	_, ok := c.element.(interface{ slotRows() []*Row })
	return ok
}

// Equal reports whether two cursors denote the same place and selection.
// The movement direction is ignored.
func (c Cursor) Equal(o Cursor) bool {
	return c.element == o.element && c.position == o.position &&
		c.mark == o.mark && c.selecting == o.selecting
}

// String returns a short description for logs and tests.
func (c Cursor) String() string {
	if c.element == nil {
		return "Cursor(<nil>)"
	}
	if c.HasSelection() {
		return fmt.Sprintf("Cursor(%s:%d..%d)", c.element.Tag(), c.mark, c.position)
	}
	return fmt.Sprintf("Cursor(%s:%d)", c.element.Tag(), c.position)
}

// Move moves the cursor one step in d. On failure the cursor is left
// unchanged and Move returns false. A move that succeeds but does not change
// the cursor also reports false.
func (c *Cursor) Move(d Direction) bool {
	if c.element == nil {
		return false
	}
	old := *c
	c.direction = d
	if !c.performMovement(old) {
		*c = old
		return false
	}
	return !c.Equal(old)
}

// performMovement asks the current element to move the cursor and ascends
// to the parent while the element cannot.
func (c *Cursor) performMovement(old Cursor) bool {
	for c.element != nil {
		if c.element.MoveCursor(c, old) {
			if c.IsAccepted() {
				return true
			}
			continue
		}

		parent := c.element.Parent()
		if parent == nil {
			return false
		}
		pos := parent.PositionOfChild(c.element)
		if pos < 0 {
			panic(fmt.Sprintf("formula: <%s> not found in its parent <%s>", c.element.Tag(), parent.Tag()))
		}
		c.element = parent

		if c.selecting {
			ltr := c.mark <= c.position
			c.mark, c.position = pos, pos
			if ltr {
				c.position++
			} else {
				c.mark++
			}
			if c.IsAccepted() {
				return true
			}
			continue
		}

		c.mark, c.position = pos, pos
		if c.direction == MoveRight {
			c.position++
			c.mark = c.position
		}
		if c.direction.Horizontal() && c.IsAccepted() {
			return true
		}
	}
	return false
}

// SetCursorTo places c at the position nearest to p inside root. When the
// tree cannot resolve the point, the cursor goes to the start of root.
func SetCursorTo(root Element, p Point) Cursor {
	var c Cursor
	if root.SetCursorTo(&c, p) && c.IsAccepted() {
		return c
	}
	return NewCursor(root, 0)
}
