package formula

import "golang.org/x/net/html"

// Fraction is an mfrac with numerator and denominator slots.
type Fraction struct {
	fixed
}

// NewFraction creates a fraction with empty slots.
func NewFraction() *Fraction {
	f := &Fraction{}
	f.initSlots("mfrac", f, f, 2)
	return f
}

// Numerator returns the numerator slot.
func (f *Fraction) Numerator() *Row { return f.slots[0] }

// Denominator returns the denominator slot.
func (f *Fraction) Denominator() *Row { return f.slots[1] }

func (f *Fraction) horizontalSlots() []int { return []int{0} }

func (f *Fraction) verticalSlot(from int, d Direction) (int, bool) {
	switch {
	case d == MoveDown && from == 0:
		return 1, true
	case d == MoveUp && from == 1:
		return 0, true
	}
	return 0, false
}

// ReadMarkup reads numerator and denominator.
func (f *Fraction) ReadMarkup(n *html.Node) error { return f.readSlots(n) }

// WriteMarkup writes the fraction.
func (f *Fraction) WriteMarkup(w *MarkupWriter) { f.writeSlots(w) }
