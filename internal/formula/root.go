package formula

import "golang.org/x/net/html"

// Root is msqrt (radicand only) or mroot (radicand and index).
type Root struct {
	fixed
}

// NewSqrt creates a square root.
func NewSqrt() *Root {
	r := &Root{}
	r.initSlots("msqrt", r, r, 1)
	return r
}

// NewRoot creates a root with an index slot.
func NewRoot() *Root {
	r := &Root{}
	r.initSlots("mroot", r, r, 2)
	return r
}

// Radicand returns the slot under the radical sign.
func (r *Root) Radicand() *Row { return r.slots[0] }

// Index returns the index slot, or nil for msqrt.
func (r *Root) Index() *Row {
	if len(r.slots) < 2 {
		return nil
	}
	return r.slots[1]
}

// The index is drawn left of the radicand.
func (r *Root) horizontalSlots() []int {
	if len(r.slots) == 2 {
		return []int{1, 0}
	}
	return []int{0}
}

func (r *Root) verticalSlot(int, Direction) (int, bool) { return 0, false }

// ReadMarkup reads the root. msqrt takes any number of children as an
// inferred row.
func (r *Root) ReadMarkup(n *html.Node) error {
	if r.tag == "mroot" {
		return r.readSlots(n)
	}
	readAttributes(&r.attrs, n)
	var only *html.Node
	count := 0
	for c := range elementChildren(n) {
		only = c
		count++
	}
	if count == 1 && only.Data == "mrow" {
		return r.slots[0].ReadMarkup(only)
	}
	return readChildren(r.slots[0], n)
}

// WriteMarkup writes the root.
func (r *Root) WriteMarkup(w *MarkupWriter) {
	if r.tag == "mroot" {
		r.writeSlots(w)
		return
	}
	w.StartElement(r.tag, &r.attrs)
	radicand := r.slots[0]
	if radicand.IsPlain() {
		for _, c := range radicand.children {
			c.WriteMarkup(w)
		}
	} else {
		radicand.WriteMarkup(w)
	}
	w.EndElement()
}
