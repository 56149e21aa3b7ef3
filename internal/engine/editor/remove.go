package editor

import (
	"github.com/dshills/mathedit/internal/engine/command"
	"github.com/dshills/mathedit/internal/formula"
)

// Remove returns a command deleting the selection, or the character or
// element before (before set) or after the cursor. At a boundary there is
// nothing to delete and nil is returned.
func (e *Editor) Remove(before bool) command.Command {
	c := e.cursor
	el := c.CurrentElement()

	if c.HasSelection() {
		start, end := c.Selection()
		switch {
		case c.InsideToken():
			return e.finish(command.NewReplaceText(el.(*formula.Token), start, end-start, ""))
		case el.IsInferredRow():
			return e.finish(command.NewReplaceElements(el, start, end-start, nil, false))
		}
		// A selection spanning the slots of a fixed element or the rows of
		// a table removes the whole element.
		return e.removeElement(el)
	}

	if t, ok := el.(*formula.Token); ok {
		return e.removeInToken(t, before)
	}
	if el.IsInferredRow() {
		return e.removeInRow(el, c.Position(), before)
	}
	return nil
}

func (e *Editor) removeElement(el formula.Element) command.Command {
	parent := el.Parent()
	if parent == nil || !parent.IsInferredRow() {
		return nil
	}
	return e.finish(command.NewReplaceElements(parent, parent.PositionOfChild(el), 1, nil, false))
}

func (e *Editor) removeInToken(t *formula.Token, before bool) command.Command {
	pos := e.cursor.Position()
	parent := t.Parent()
	inRow := parent != nil && parent.IsInferredRow()
	if t.IsEmpty() {
		return e.removeElement(t)
	}

	var start, end int
	if before {
		if pos == 0 {
			if inRow {
				return e.removeInRow(parent, parent.PositionOfChild(t), true)
			}
			return nil
		}
		start, end = t.PreviousStop(pos), pos
	} else {
		if pos == t.Len() {
			if inRow {
				return e.removeInRow(parent, parent.PositionOfChild(t)+1, false)
			}
			return nil
		}
		start, end = pos, t.NextStop(pos)
	}

	if inRow && end-start == t.Len() {
		return e.removeElement(t)
	}
	cmd := command.NewReplaceText(t, start, end-start, "")
	if inRow {
		idx := parent.PositionOfChild(t)
		switch start {
		case 0:
			cmd.SetRedoCursor(formula.NewCursor(parent, idx))
		case t.Len() - (end - start):
			cmd.SetRedoCursor(formula.NewCursor(parent, idx+1))
		}
	}
	return e.finish(cmd)
}

// removeInRow deletes next to the gap pos of row. A token longer than one
// character loses a single character; anything else goes as a whole.
func (e *Editor) removeInRow(row formula.Element, pos int, before bool) command.Command {
	var target formula.Element
	if before {
		target = row.ElementBefore(pos)
	} else {
		target = row.ElementAfter(pos)
	}
	if target == nil {
		return nil
	}

	if t, ok := target.(*formula.Token); ok && t.GraphemeCount() > 1 {
		var cmd *command.ReplaceText
		if before {
			stop := t.PreviousStop(t.Len())
			cmd = command.NewReplaceText(t, stop, t.Len()-stop, "")
		} else {
			cmd = command.NewReplaceText(t, 0, t.NextStop(0), "")
		}
		cmd.SetRedoCursor(formula.NewCursor(row, pos))
		return e.finish(cmd)
	}
	return e.finish(command.NewReplaceElements(row, row.PositionOfChild(target), 1, nil, false))
}
