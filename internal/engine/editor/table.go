package editor

import (
	"github.com/dshills/mathedit/internal/engine/command"
	"github.com/dshills/mathedit/internal/formula"
)

// ChangeTable returns a command inserting or removing a row (rows set) or
// a column of the table around the cursor. New rows go below the current
// cell and new columns to its right. Outside a table nil is returned.
func (e *Editor) ChangeTable(insert, rows bool) command.Command {
	cell := formula.ParentTableData(e.cursor.CurrentElement())
	if cell == nil {
		return nil
	}
	tr, ok := cell.Parent().(*formula.TableRow)
	if !ok {
		return nil
	}
	table, ok := tr.Parent().(*formula.Table)
	if !ok {
		return nil
	}
	row := -1
	for i, r := range table.Rows() {
		if r == tr {
			row = i
			break
		}
	}
	column := tr.PositionOfChild(cell)
	if row < 0 || column < 0 {
		return nil
	}

	var cmd command.Command
	switch {
	case rows && insert:
		cmd = command.NewReplaceRow(table, row+1, 0, 1)
	case rows:
		cmd = command.NewReplaceRow(table, row, 1, 0)
	case insert:
		cmd = command.NewReplaceColumn(table, row, column+1, 0, 1)
	default:
		cmd = command.NewReplaceColumn(table, row, column, 1, 0)
	}
	return e.finish(cmd)
}
