package formula

import "golang.org/x/net/html"

// UnderOver is munder, mover or munderover. Slot 0 is the base; under and
// over scripts follow in MathML argument order.
type UnderOver struct {
	fixed
	under int
	over  int
}

// NewUnderOver creates an element for tag, which must be munder, mover or
// munderover.
func NewUnderOver(tag string) *UnderOver {
	u := &UnderOver{under: -1, over: -1}
	switch tag {
	case "munder":
		u.under = 1
		u.initSlots(tag, u, u, 2)
	case "mover":
		u.over = 1
		u.initSlots(tag, u, u, 2)
	case "munderover":
		u.under, u.over = 1, 2
		u.initSlots(tag, u, u, 3)
	default:
		panic("formula: not an under/over tag: " + tag)
	}
	return u
}

// Base returns the base slot.
func (u *UnderOver) Base() *Row { return u.slots[0] }

// Under returns the underscript slot, or nil.
func (u *UnderOver) Under() *Row {
	if u.under < 0 {
		return nil
	}
	return u.slots[u.under]
}

// Over returns the overscript slot, or nil.
func (u *UnderOver) Over() *Row {
	if u.over < 0 {
		return nil
	}
	return u.slots[u.over]
}

func (u *UnderOver) horizontalSlots() []int { return []int{0} }

func (u *UnderOver) verticalSlot(from int, d Direction) (int, bool) {
	switch d {
	case MoveUp:
		if from == 0 && u.over >= 0 {
			return u.over, true
		}
		if from == u.under {
			return 0, true
		}
	case MoveDown:
		if from == 0 && u.under >= 0 {
			return u.under, true
		}
		if from == u.over {
			return 0, true
		}
	}
	return 0, false
}

// ReadMarkup reads base and scripts.
func (u *UnderOver) ReadMarkup(n *html.Node) error { return u.readSlots(n) }

// WriteMarkup writes the element.
func (u *UnderOver) WriteMarkup(w *MarkupWriter) { u.writeSlots(w) }
