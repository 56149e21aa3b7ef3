package command

import (
	"fmt"

	"github.com/dshills/mathedit/internal/formula"
)

// ReplaceElements replaces a span of children in a row-like element.
//
// With wrap set, the first empty element found depth first in the inserted
// elements is a placeholder: on Apply it is dropped and the removed children
// are moved into its place instead of being discarded. Inserting a fraction
// template over a selection thus puts the selection into the numerator.
type ReplaceElements struct {
	base
	owner    formula.Element
	position int
	added    []formula.Element
	removed  []formula.Element

	placeholder         formula.Element
	placeholderParent   formula.Element
	placeholderPosition int
}

// NewReplaceElements replaces length children of owner starting at pos
// with added. Elements in added must be detached.
func NewReplaceElements(owner formula.Element, pos, length int, added []formula.Element, wrap bool) *ReplaceElements {
	if !owner.IsInferredRow() {
		panic(fmt.Sprintf("command: <%s> is not a row", owner.Tag()))
	}
	if pos < 0 || length < 0 || pos+length > owner.EndPosition() {
		panic(fmt.Sprintf("command: span %d+%d out of range for <%s>", pos, length, owner.Tag()))
	}
	for _, e := range added {
		if e.Parent() != nil {
			panic(fmt.Sprintf("command: <%s> is already attached", e.Tag()))
		}
	}

	c := &ReplaceElements{
		owner:    owner,
		position: pos,
		added:    append([]formula.Element(nil), added...),
	}
	for i := 0; i < length; i++ {
		c.removed = append(c.removed, owner.ElementAfter(pos+i))
	}

	if wrap {
		for _, e := range c.added {
			if p := formula.EmptyDescendant(e); p != nil {
				c.placeholder = p
				c.placeholderParent = p.Parent()
				c.placeholderPosition = c.placeholderParent.PositionOfChild(p)
				break
			}
		}
	}

	if c.placeholder != nil {
		c.redoCursor = formula.NewCursor(c.placeholderParent, c.placeholderPosition+len(c.removed))
		if len(c.removed) == 0 {
			c.redoCursor = formula.NewCursor(c.placeholder, 0)
		}
	} else {
		c.redoCursor = formula.NewCursor(owner, pos+len(c.added))
	}
	c.undoCursor = formula.NewCursor(owner, pos+length)
	c.description = describeElements(len(c.added), len(c.removed), c.placeholder != nil)
	return c
}

func describeElements(added, removed int, wrapped bool) string {
	switch {
	case wrapped && removed > 0:
		return "Wrap selection"
	case added == 0:
		return "Remove elements"
	case removed > 0:
		return "Replace elements"
	}
	return "Insert elements"
}

// Added returns the inserted elements.
func (c *ReplaceElements) Added() []formula.Element { return c.added }

// Removed returns the replaced elements.
func (c *ReplaceElements) Removed() []formula.Element { return c.removed }

// Apply removes the span, moves it into the placeholder when wrapping, and
// inserts the new elements.
func (c *ReplaceElements) Apply() formula.Cursor {
	c.beginApply()
	for _, e := range c.removed {
		mustRemove(c.owner, e)
	}
	if c.placeholder != nil && len(c.removed) > 0 {
		mustRemove(c.placeholderParent, c.placeholder)
		for i, e := range c.removed {
			mustInsert(c.placeholderParent, c.placeholderPosition+i, e)
		}
	}
	for i, e := range c.added {
		mustInsert(c.owner, c.position+i, e)
	}
	return c.redoCursor
}

// Revert takes the new elements out again and restores the span.
func (c *ReplaceElements) Revert() formula.Cursor {
	c.beginRevert()
	for _, e := range c.added {
		mustRemove(c.owner, e)
	}
	if c.placeholder != nil && len(c.removed) > 0 {
		for _, e := range c.removed {
			mustRemove(c.placeholderParent, e)
		}
		mustInsert(c.placeholderParent, c.placeholderPosition, c.placeholder)
	}
	for i, e := range c.removed {
		mustInsert(c.owner, c.position+i, e)
	}
	return c.undoCursor
}
