// Package formula provides the element tree and cursor model of the formula
// editor.
//
// A formula is a tree of MathML presentation elements rooted at a Formula
// (the <math> element). Every element exposes a linear range of cursor
// positions 0..EndPosition and decides for itself how a cursor moves
// through it. Key concepts:
//
// # Elements
//
// The tree is made of a small closed set of element kinds:
//   - Token: a leaf holding text (mi, mn, mo, mtext, ms), with embedded glyphs
//   - Row: an ordered sequence of children (mrow and its inferred variants)
//   - Fraction, Root, UnderOver, Multiscript: fixed arity elements whose
//     slots are inferred rows
//   - Table, TableRow, TableData: a rectangular grid of cells
//   - Formula: the root row
//
// An inferred row is a row-like container whose gaps are insertion points:
// Row, TableData, Formula and every slot of a fixed element.
//
// # Cursor
//
// Cursor is a plain value (element, position, mark, selecting, direction).
// Movement asks the current element first and ascends to the parent when the
// element cannot satisfy the move:
//
//	c := formula.NewCursor(root, 0)
//	c.Move(formula.MoveRight)
//
// Selection is the half open interval between mark and position inside a
// single element.
//
// # Markup
//
// ParseMarkup and ParseFragment read MathML into a tree; Markup writes it
// back. Both directions go through golang.org/x/net/html so entities and
// foreign content are handled by the HTML5 parser.
//
// # Documents
//
// A Document owns the current root and a revision counter. Commands replace
// the root (Load) or mutate the tree below it; nothing else swaps the root.
package formula
