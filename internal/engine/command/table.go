package command

import (
	"fmt"

	"github.com/dshills/mathedit/internal/formula"
)

// cellCursor returns the cursor for entering cell: inside its placeholder
// when the cell holds nothing else, at its start otherwise.
func cellCursor(cell *formula.TableData) formula.Cursor {
	if cell.Len() == 1 && formula.IsPlaceholder(cell.Child(0)) {
		return formula.NewCursor(cell.Child(0), 0)
	}
	return formula.NewCursor(cell, 0)
}

// ReplaceRow replaces oldLength rows of a table starting at number with
// newLength rows of placeholder cells. Removing every row leaves a single
// placeholder row behind.
type ReplaceRow struct {
	base
	table       *formula.Table
	number      int
	oldRows     []*formula.TableRow
	newRows     []*formula.TableRow
	placeholder *formula.TableRow
}

// NewReplaceRow builds the command against the current table.
func NewReplaceRow(table *formula.Table, number, oldLength, newLength int) *ReplaceRow {
	rows := table.RowCount()
	if number < 0 || oldLength < 0 || newLength < 0 || number+oldLength > rows {
		panic(fmt.Sprintf("command: rows %d+%d out of range [0,%d]", number, oldLength, rows))
	}
	c := &ReplaceRow{table: table, number: number}
	for i := 0; i < oldLength; i++ {
		c.oldRows = append(c.oldRows, table.Row(number+i))
	}
	columns := table.ColumnCount()
	for i := 0; i < newLength; i++ {
		c.newRows = append(c.newRows, formula.NewPlaceholderRow(columns))
	}
	if newLength == 0 && oldLength == rows {
		c.placeholder = formula.NewPlaceholderRow(1)
	}

	switch {
	case len(c.newRows) > 0:
		c.redoCursor = cellCursor(c.newRows[0].Cell(0))
	case c.placeholder != nil:
		c.redoCursor = cellCursor(c.placeholder.Cell(0))
	case number+oldLength < rows:
		c.redoCursor = cellCursor(table.Row(number + oldLength).Cell(0))
	default:
		c.redoCursor = cellCursor(table.Row(number - 1).Cell(0))
	}
	if oldLength > 0 {
		c.undoCursor = cellCursor(c.oldRows[0].Cell(0))
	} else {
		c.undoCursor = c.redoCursor
	}

	switch {
	case newLength > 0 && oldLength == 0:
		c.description = "Insert row"
	case newLength == 0:
		c.description = "Remove row"
	default:
		c.description = "Replace rows"
	}
	return c
}

// Apply swaps the rows.
func (c *ReplaceRow) Apply() formula.Cursor {
	c.beginApply()
	for _, r := range c.oldRows {
		mustRemove(c.table, r)
	}
	if c.placeholder != nil {
		mustInsert(c.table, 0, c.placeholder)
	}
	for i, r := range c.newRows {
		mustInsert(c.table, c.number+i, r)
	}
	return c.redoCursor
}

// Revert restores the original rows.
func (c *ReplaceRow) Revert() formula.Cursor {
	c.beginRevert()
	for _, r := range c.newRows {
		mustRemove(c.table, r)
	}
	if c.placeholder != nil {
		mustRemove(c.table, c.placeholder)
	}
	for i, r := range c.oldRows {
		mustInsert(c.table, c.number+i, r)
	}
	return c.undoCursor
}

// ReplaceColumn replaces oldLength columns of a table starting at position
// with newLength columns of placeholder cells. Removing every column
// replaces all rows by a single placeholder row.
type ReplaceColumn struct {
	base
	table       *formula.Table
	position    int
	rows        []*formula.TableRow
	oldColumns  [][]*formula.TableData
	newColumns  [][]*formula.TableData
	placeholder *formula.TableRow
}

// NewReplaceColumn builds the command against the current table. The cursor
// lands in row anchor, usually the row the editor cursor is in.
func NewReplaceColumn(table *formula.Table, anchor, position, oldLength, newLength int) *ReplaceColumn {
	columns := table.ColumnCount()
	if position < 0 || oldLength < 0 || newLength < 0 || position+oldLength > columns {
		panic(fmt.Sprintf("command: columns %d+%d out of range [0,%d]", position, oldLength, columns))
	}
	anchor = min(max(anchor, 0), table.RowCount()-1)

	c := &ReplaceColumn{table: table, position: position, rows: table.Rows()}
	if newLength == 0 && oldLength == columns {
		c.placeholder = formula.NewPlaceholderRow(1)
	} else {
		for _, r := range c.rows {
			cells := r.Cells()
			c.oldColumns = append(c.oldColumns, cells[position:position+oldLength])
			var fresh []*formula.TableData
			for j := 0; j < newLength; j++ {
				fresh = append(fresh, formula.NewPlaceholderCell())
			}
			c.newColumns = append(c.newColumns, fresh)
		}
	}

	row := c.rows[anchor]
	switch {
	case newLength > 0:
		c.redoCursor = cellCursor(c.newColumns[anchor][0])
	case c.placeholder != nil:
		c.redoCursor = cellCursor(c.placeholder.Cell(0))
	case position+oldLength < columns:
		c.redoCursor = cellCursor(row.Cell(position + oldLength))
	default:
		c.redoCursor = cellCursor(row.Cell(position - 1))
	}
	if oldLength > 0 {
		c.undoCursor = cellCursor(row.Cell(position))
	} else {
		c.undoCursor = c.redoCursor
	}

	switch {
	case newLength > 0 && oldLength == 0:
		c.description = "Insert column"
	case newLength == 0:
		c.description = "Remove column"
	default:
		c.description = "Replace columns"
	}
	return c
}

// Apply swaps the columns.
func (c *ReplaceColumn) Apply() formula.Cursor {
	c.beginApply()
	if c.placeholder != nil {
		for _, r := range c.rows {
			mustRemove(c.table, r)
		}
		mustInsert(c.table, 0, c.placeholder)
		return c.redoCursor
	}
	for i, r := range c.rows {
		for _, cell := range c.oldColumns[i] {
			mustRemove(r, cell)
		}
		for j, cell := range c.newColumns[i] {
			mustInsert(r, c.position+j, cell)
		}
	}
	return c.redoCursor
}

// Revert restores the original columns.
func (c *ReplaceColumn) Revert() formula.Cursor {
	c.beginRevert()
	if c.placeholder != nil {
		mustRemove(c.table, c.placeholder)
		for i, r := range c.rows {
			mustInsert(c.table, i, r)
		}
		return c.undoCursor
	}
	for i, r := range c.rows {
		for _, cell := range c.newColumns[i] {
			mustRemove(r, cell)
		}
		for j, cell := range c.oldColumns[i] {
			mustInsert(r, c.position+j, cell)
		}
	}
	return c.undoCursor
}
