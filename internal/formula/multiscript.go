package formula

import (
	"slices"

	"golang.org/x/net/html"
)

// Multiscript is a base with subscript/superscript pairs after it and,
// optionally, before it. It covers msub, msup, msubsup and mmultiscripts.
//
// Slots are stored as base, post scripts, pre scripts. Within each list
// scripts alternate subscript, superscript. An empty slot stands for an
// absent script.
type Multiscript struct {
	fixed
	post int
}

// NewMultiscript creates an element for msub, msup, msubsup or mmultiscripts.
func NewMultiscript(tag string) *Multiscript {
	m := &Multiscript{}
	switch tag {
	case "msub", "msup", "msubsup":
		m.initSlots(tag, m, m, 3)
		m.post = 2
	case "mmultiscripts":
		m.initSlots(tag, m, m, 1)
	default:
		panic("formula: not a script tag: " + tag)
	}
	return m
}

// Base returns the base slot.
func (m *Multiscript) Base() *Row { return m.slots[0] }

// PostScripts returns the scripts after the base.
func (m *Multiscript) PostScripts() []*Row {
	return slices.Clone(m.slots[1 : 1+m.post])
}

// PreScripts returns the scripts before the base.
func (m *Multiscript) PreScripts() []*Row {
	return slices.Clone(m.slots[1+m.post:])
}

// AppendPostScript adds a post script slot holding e, or an empty slot for nil.
func (m *Multiscript) AppendPostScript(e Element) *Row {
	slot := m.scriptSlot(e)
	m.slots = slices.Insert(m.slots, 1+m.post, slot)
	m.post++
	return slot
}

// AppendPreScript adds a pre script slot holding e, or an empty slot for nil.
func (m *Multiscript) AppendPreScript(e Element) *Row {
	slot := m.scriptSlot(e)
	m.slots = append(m.slots, slot)
	return slot
}

func (m *Multiscript) scriptSlot(e Element) *Row {
	slot := m.newSlot()
	if e != nil {
		slot.InsertChild(0, e)
	}
	return slot
}

// EnsureEvenNumberElements pads both script lists with an empty slot where
// needed so every subscript has a superscript partner.
func (m *Multiscript) EnsureEvenNumberElements() {
	if m.post%2 == 1 {
		m.AppendPostScript(nil)
	}
	if (len(m.slots)-1-m.post)%2 == 1 {
		m.AppendPreScript(nil)
	}
}

// horizontalSlots visits pre scripts, the base, then post scripts, each pair
// subscript first.
func (m *Multiscript) horizontalSlots() []int {
	order := make([]int, 0, len(m.slots))
	for i := 1 + m.post; i < len(m.slots); i++ {
		order = append(order, i)
	}
	order = append(order, 0)
	for i := 1; i <= m.post; i++ {
		order = append(order, i)
	}
	return order
}

// verticalSlot moves between the two scripts of a pair.
func (m *Multiscript) verticalSlot(from int, d Direction) (int, bool) {
	if from == 0 {
		return 0, false
	}
	first := 1
	if from > m.post {
		first = 1 + m.post
	}
	sub := (from-first)%2 == 0
	switch {
	case d == MoveUp && sub && from+1 < len(m.slots):
		return from + 1, true
	case d == MoveDown && !sub:
		return from - 1, true
	}
	return 0, false
}

// ReadMarkup reads the element. Missing scripts of msub and msup become
// empty slots; none marks an empty slot in mmultiscripts.
func (m *Multiscript) ReadMarkup(n *html.Node) error {
	readAttributes(&m.attrs, n)
	var args []*html.Node
	for c := range elementChildren(n) {
		args = append(args, c)
	}

	switch m.tag {
	case "msub", "msup", "msubsup":
		want := 2
		if m.tag == "msubsup" {
			want = 3
		}
		if len(args) != want {
			return markupErrorf(m.tag, "expected %d children, found %d", want, len(args))
		}
		if err := readSlot(m.slots[0], args[0]); err != nil {
			return err
		}
		switch m.tag {
		case "msub":
			return readSlot(m.slots[1], args[1])
		case "msup":
			return readSlot(m.slots[2], args[1])
		}
		if err := readSlot(m.slots[1], args[1]); err != nil {
			return err
		}
		return readSlot(m.slots[2], args[2])
	}

	if len(args) == 0 {
		return markupErrorf(m.tag, "missing base")
	}
	if err := readSlot(m.slots[0], args[0]); err != nil {
		return err
	}
	pre := false
	for _, a := range args[1:] {
		if a.Data == "mprescripts" {
			if pre {
				return markupErrorf(m.tag, "more than one <mprescripts/>")
			}
			m.EnsureEvenNumberElements()
			pre = true
			continue
		}
		var slot *Row
		if pre {
			slot = m.AppendPreScript(nil)
		} else {
			slot = m.AppendPostScript(nil)
		}
		if err := readSlot(slot, a); err != nil {
			return err
		}
	}
	m.EnsureEvenNumberElements()
	return nil
}

// markupTag picks the most specific tag that can express the current slots.
func (m *Multiscript) markupTag() string {
	if m.post != 2 || len(m.slots) != 3 {
		return "mmultiscripts"
	}
	sub, sup := !m.slots[1].IsEmpty(), !m.slots[2].IsEmpty()
	switch {
	case sub && sup:
		return "msubsup"
	case sub:
		return "msub"
	case sup:
		return "msup"
	}
	if m.tag == "mmultiscripts" {
		return m.tag
	}
	return "msubsup"
}

// WriteMarkup writes the element, choosing msub, msup, msubsup or
// mmultiscripts from the populated slots.
func (m *Multiscript) WriteMarkup(w *MarkupWriter) {
	tag := m.markupTag()
	w.StartElement(tag, &m.attrs)
	writeSlot(w, m.slots[0])
	switch tag {
	case "msub":
		writeSlot(w, m.slots[1])
	case "msup":
		writeSlot(w, m.slots[2])
	case "msubsup":
		writeSlot(w, m.slots[1])
		writeSlot(w, m.slots[2])
	default:
		for _, s := range m.slots[1 : 1+m.post] {
			writeScript(w, s)
		}
		if len(m.slots) > 1+m.post {
			w.StartElement("mprescripts", nil)
			w.EndElement()
			for _, s := range m.slots[1+m.post:] {
				writeScript(w, s)
			}
		}
	}
	w.EndElement()
}

func writeScript(w *MarkupWriter, slot *Row) {
	if slot.IsEmpty() && slot.attrs.Len() == 0 {
		w.StartElement("none", nil)
		w.EndElement()
		return
	}
	writeSlot(w, slot)
}
