// Package layout computes box geometry for formula trees in character cells.
//
// The editor core only consumes geometry: hit testing (formula.SetCursorTo)
// and vertical cursor movement read the boxes this package writes. Boxes are
// measured bottom-up and then placed top-down, so every element ends up with
// an absolute origin.
//
// Token widths come from go-runewidth, so wide CJK characters take two cells
// and combining marks none. Operators get a cell of space on each side when
// the operator dictionary gives them at least a medium math space.
package layout
