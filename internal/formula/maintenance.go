package formula

import (
	"fmt"
	"strings"
)

// Walk visits e and its descendants depth first in document order. Returning
// false from fn skips the children of the visited element.
func Walk(e Element, fn func(Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.ChildElements() {
		Walk(c, fn)
	}
}

// EmptyDescendant returns the first empty element below or at e, in depth
// first order, whose parent is an inferred row. Such an element is a hole
// the editor can fill.
func EmptyDescendant(e Element) Element {
	var found Element
	Walk(e, func(x Element) bool {
		if found != nil {
			return false
		}
		if p := x.Parent(); p != nil && p.IsInferredRow() && x.IsEmpty() {
			found = x
			return false
		}
		return true
	})
	return found
}

// Normalize removes plain mrows with no children and replaces plain mrows
// with a single child by that child, wherever they sit inside an inferred
// row. It reports whether the tree changed. A second call is a no-op.
//
// Normalize is not undoable. Edits go through command.Prune, which records
// the same collapse so that undo can restore the rows.
func Normalize(e Element) bool {
	changed := false
	for _, c := range e.ChildElements() {
		if Normalize(c) {
			changed = true
		}
	}
	if !e.IsInferredRow() {
		return changed
	}
	for _, c := range e.ChildElements() {
		row, ok := c.(*Row)
		if !ok || !row.IsPlain() {
			continue
		}
		switch row.Len() {
		case 0:
			e.RemoveChild(row)
			changed = true
		case 1:
			only := row.children[0]
			row.RemoveChild(only)
			e.ReplaceChild(row, only)
			changed = true
		}
	}
	return changed
}

// Validate checks the structural invariants of the tree below e: parent
// links, position round trips, rectangular tables, paired scripts and one
// glyph per glyph marker in each token.
func Validate(e Element) error {
	var err error
	Walk(e, func(x Element) bool {
		if err != nil {
			return false
		}
		for _, c := range x.ChildElements() {
			if c.Parent() != x {
				err = fmt.Errorf("<%s> has a wrong parent link under <%s>", c.Tag(), x.Tag())
				return false
			}
			pos := x.PositionOfChild(c)
			if pos < 0 || x.ElementAfter(pos) != c {
				err = fmt.Errorf("<%s> does not map back to its position %d in <%s>", c.Tag(), pos, x.Tag())
				return false
			}
		}
		switch t := x.(type) {
		case *Table:
			if t.RowCount() == 0 {
				err = fmt.Errorf("table without rows")
				return false
			}
			for _, r := range t.rows {
				if len(r.cells) != t.ColumnCount() || len(r.cells) == 0 {
					err = fmt.Errorf("table is not rectangular")
					return false
				}
			}
		case *Token:
			if n := countGlyphMarkers(t.text); n != len(t.glyphs) {
				err = fmt.Errorf("<%s> has %d glyph markers for %d glyphs", t.tag, n, len(t.glyphs))
				return false
			}
		case *Multiscript:
			if t.post%2 != 0 || (len(t.slots)-1-t.post)%2 != 0 {
				err = fmt.Errorf("<%s> has an unpaired script", t.tag)
				return false
			}
		}
		return true
	})
	return err
}

// Dump returns an indented outline of the tree, one element per line, for
// debugging and structural comparison.
func Dump(e Element) string {
	var b strings.Builder
	dump(&b, e, 0)
	return b.String()
}

func dump(b *strings.Builder, e Element, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(e.Tag())
	e.Attributes().Each(func(name, value string) {
		fmt.Fprintf(b, " %s=%q", name, value)
	})
	if t, ok := e.(*Token); ok {
		fmt.Fprintf(b, " %q", t.Text())
		if n := len(t.glyphs); n > 0 {
			fmt.Fprintf(b, " glyphs=%d", n)
		}
	}
	b.WriteByte('\n')
	for _, c := range e.ChildElements() {
		dump(b, c, depth+1)
	}
}
