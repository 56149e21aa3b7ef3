package command

import (
	"fmt"

	"github.com/dshills/mathedit/internal/formula"
)

// pruneStep is one collapse recorded by Prune. With child nil the empty row
// was removed; otherwise the row was replaced by its only child.
type pruneStep struct {
	parent formula.Element
	row    *formula.Row
	child  formula.Element
	index  int
}

// Prune collapses degenerate mrows left behind by an edit: plain mrows
// without children inside a row are removed and plain mrows with a single
// child are replaced by that child. The steps are recorded on the first
// Apply so the collapse can be reverted and replayed.
type Prune struct {
	base
	root     formula.Element
	steps    []pruneStep
	recorded bool
}

// NewPrune builds a prune of the tree below root. cur is the cursor after
// the edit; the redo cursor follows it out of any removed row.
func NewPrune(root formula.Element, cur formula.Cursor) *Prune {
	c := &Prune{root: root}
	c.description = "Tidy rows"
	c.undoCursor = cur
	c.redoCursor = cur
	return c
}

// Len returns the number of recorded steps.
func (c *Prune) Len() int { return len(c.steps) }

// Apply collapses the degenerate rows.
func (c *Prune) Apply() formula.Cursor {
	c.beginApply()
	if !c.recorded {
		c.recorded = true
		c.record(c.root)
		return c.redoCursor
	}
	for _, s := range c.steps {
		s.apply()
	}
	return c.redoCursor
}

// Revert restores the rows in reverse order.
func (c *Prune) Revert() formula.Cursor {
	c.beginRevert()
	for i := len(c.steps) - 1; i >= 0; i-- {
		c.steps[i].revert()
	}
	return c.undoCursor
}

// record walks bottom up like formula.Normalize, applying and recording
// each step.
func (c *Prune) record(e formula.Element) {
	for _, child := range e.ChildElements() {
		c.record(child)
	}
	if !e.IsInferredRow() {
		return
	}
	for _, child := range e.ChildElements() {
		row, ok := child.(*formula.Row)
		if !ok || !row.IsPlain() || row.Len() > 1 {
			continue
		}
		s := pruneStep{parent: e, row: row, index: e.PositionOfChild(row)}
		if row.Len() == 1 {
			s.child = row.Child(0)
		}
		s.apply()
		c.steps = append(c.steps, s)
		c.redoCursor = s.mapCursor(c.redoCursor)
	}
}

func (s pruneStep) apply() {
	if s.child == nil {
		mustRemove(s.parent, s.row)
		return
	}
	mustRemove(s.row, s.child)
	if !s.parent.ReplaceChild(s.row, s.child) {
		panic(fmt.Sprintf("command: <mrow> is not a child of <%s>", s.parent.Tag()))
	}
}

func (s pruneStep) revert() {
	if s.child == nil {
		mustInsert(s.parent, s.index, s.row)
		return
	}
	if !s.parent.ReplaceChild(s.child, s.row) {
		panic(fmt.Sprintf("command: <%s> is not a child of <%s>", s.child.Tag(), s.parent.Tag()))
	}
	mustInsert(s.row, 0, s.child)
}

// mapCursor moves a cursor off the collapsed row into the parent gaps.
func (s pruneStep) mapCursor(cur formula.Cursor) formula.Cursor {
	switch cur.CurrentElement() {
	case formula.Element(s.row):
		// Positions 0 and 1 of a single child row map to the gaps around it.
		return formula.NewCursor(s.parent, s.index+min(cur.Position(), 1))
	case s.parent:
		if s.child != nil {
			return cur
		}
		shift := func(p int) int {
			if p > s.index {
				return p - 1
			}
			return p
		}
		if cur.IsSelecting() {
			return formula.NewSelection(s.parent, shift(cur.Mark()), shift(cur.Position()))
		}
		return formula.NewCursor(s.parent, shift(cur.Position()))
	}
	return cur
}
