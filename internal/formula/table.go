package formula

import (
	"slices"

	"golang.org/x/net/html"
)

// Table is an mtable: a rectangular grid of rows. Positions follow the
// fixed element scheme, 2i before row i and 2i+1 after it.
type Table struct {
	base
	rows []*TableRow
}

// NewTable creates a table without rows.
func NewTable() *Table {
	t := &Table{}
	t.init("mtable", t)
	return t
}

// NewTableSize creates a rows x columns table of placeholder cells.
func NewTableSize(rows, columns int) *Table {
	t := NewTable()
	for range max(rows, 1) {
		t.InsertChild(len(t.rows), NewPlaceholderRow(columns))
	}
	return t
}

// Rows returns the table rows.
func (t *Table) Rows() []*TableRow { return slices.Clone(t.rows) }

// Row returns row i.
func (t *Table) Row(i int) *TableRow { return t.rows[i] }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of cells per row.
func (t *Table) ColumnCount() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0].cells)
}

// Cell returns the cell at row, column or nil.
func (t *Table) Cell(row, column int) *TableData {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	r := t.rows[row]
	if column < 0 || column >= len(r.cells) {
		return nil
	}
	return r.cells[column]
}

// ChildElements returns the rows.
func (t *Table) ChildElements() []Element {
	out := make([]Element, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

// EndPosition returns 2n-1 for n rows.
func (t *Table) EndPosition() int {
	if len(t.rows) == 0 {
		return 0
	}
	return 2*len(t.rows) - 1
}

// ElementBefore returns the row ending at pos.
func (t *Table) ElementBefore(pos int) Element {
	if pos%2 == 1 && pos/2 < len(t.rows) {
		return t.rows[pos/2]
	}
	return nil
}

// ElementAfter returns the row starting at pos.
func (t *Table) ElementAfter(pos int) Element {
	if pos >= 0 && pos%2 == 0 && pos/2 < len(t.rows) {
		return t.rows[pos/2]
	}
	return nil
}

// PositionOfChild returns 2i for row i.
func (t *Table) PositionOfChild(child Element) int {
	if i := t.rowIndex(child); i >= 0 {
		return 2 * i
	}
	return -1
}

func (t *Table) rowIndex(child Element) int {
	for i, r := range t.rows {
		if Element(r) == child {
			return i
		}
	}
	return -1
}

func (t *Table) IsEmpty() bool { return false }
func (t *Table) IsInferredRow() bool { return false }

// AcceptCursor only accepts a selecting cursor.
func (t *Table) AcceptCursor(c Cursor) bool { return c.IsSelecting() }

// MoveCursor moves between rows. Leaving a row horizontally continues in
// the neighbouring row; vertical moves keep the column.
func (t *Table) MoveCursor(c *Cursor, old Cursor) bool {
	if c.IsSelecting() || len(t.rows) == 0 {
		return false
	}
	pos := c.Position()
	i := pos / 2

	switch d := c.Direction(); d {
	case MoveRight:
		if pos == 0 {
			enter(c, t.rows[0], false)
			return true
		}
		if pos%2 == 0 || i+1 >= len(t.rows) {
			return false
		}
		enter(c, t.rows[i+1], false)
		return true

	case MoveLeft:
		if pos == t.EndPosition() {
			enter(c, t.rows[len(t.rows)-1], true)
			return true
		}
		if pos%2 == 1 || i == 0 {
			return false
		}
		enter(c, t.rows[i-1], true)
		return true

	case MoveUp, MoveDown:
		target := i - 1
		if d == MoveDown {
			target = i + 1
		}
		if target < 0 || target >= len(t.rows) {
			return false
		}
		row := t.rows[target]
		col := min(max(columnOf(old), 0), len(row.cells)-1)
		if col < 0 {
			return false
		}
		enterVertically(c, row.cells[col], old)
		return true
	}
	return false
}

// columnOf returns the column of the cell containing c, or 0.
func columnOf(c Cursor) int {
	for e := c.CurrentElement(); e != nil; e = e.Parent() {
		if d, ok := e.(*TableData); ok {
			if r, ok := d.parent.(*TableRow); ok {
				return r.PositionOfChild(d)
			}
		}
	}
	return 0
}

// SetCursorTo delegates to the row containing p, or the nearest one.
func (t *Table) SetCursorTo(c *Cursor, p Point) bool {
	if len(t.rows) == 0 {
		return false
	}
	best := t.rows[0]
	bestDist := best.geometry.distance(p)
	for _, r := range t.rows {
		if r.geometry.Contains(p) {
			return r.SetCursorTo(c, p)
		}
		if d := r.geometry.distance(p); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best.SetCursorTo(c, p)
}

func tableChildAllowed(e Element) bool {
	_, ok := e.(*TableRow)
	return ok
}

// InsertChild inserts a row at row index pos.
func (t *Table) InsertChild(pos int, child Element) bool {
	if pos < 0 || pos > len(t.rows) {
		return false
	}
	adopt(t, child, tableChildAllowed)
	t.rows = slices.Insert(t.rows, pos, child.(*TableRow))
	return true
}

// RemoveChild detaches a row.
func (t *Table) RemoveChild(child Element) bool {
	i := t.rowIndex(child)
	if i < 0 {
		return false
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	child.setParent(nil)
	return true
}

// ReplaceChild swaps a row.
func (t *Table) ReplaceChild(old, replacement Element) bool {
	i := t.rowIndex(old)
	if i < 0 {
		return false
	}
	old.setParent(nil)
	adopt(t, replacement, tableChildAllowed)
	t.rows[i] = replacement.(*TableRow)
	return true
}

// ReadMarkup reads the rows and pads the grid to a rectangle. Elements
// outside mtr are wrapped in a row of their own.
func (t *Table) ReadMarkup(n *html.Node) error {
	readAttributes(&t.attrs, n)
	for c := range elementChildren(n) {
		row := NewTableRow()
		switch c.Data {
		case "mtr", "mlabeledtr":
			if err := row.ReadMarkup(c); err != nil {
				return err
			}
		default:
			cell := NewTableData()
			if err := readSlot(&cell.Row, c); err != nil {
				return err
			}
			row.InsertChild(0, cell)
		}
		t.InsertChild(len(t.rows), row)
	}
	t.normalizeGrid()
	return nil
}

// normalizeGrid makes the table rectangular with at least one cell.
func (t *Table) normalizeGrid() {
	if len(t.rows) == 0 {
		t.InsertChild(0, NewPlaceholderRow(1))
	}
	columns := 1
	for _, r := range t.rows {
		columns = max(columns, len(r.cells))
	}
	for _, r := range t.rows {
		for len(r.cells) < columns {
			r.InsertChild(len(r.cells), NewPlaceholderCell())
		}
	}
}

// WriteMarkup writes the table.
func (t *Table) WriteMarkup(w *MarkupWriter) {
	w.StartElement(t.tag, &t.attrs)
	for _, r := range t.rows {
		r.WriteMarkup(w)
	}
	w.EndElement()
}

// TableRow is an mtr. Its positions are cell indexes.
type TableRow struct {
	base
	cells []*TableData
}

// NewTableRow creates an empty row.
func NewTableRow() *TableRow {
	r := &TableRow{}
	r.init("mtr", r)
	return r
}

// NewPlaceholderRow creates a row of placeholder cells.
func NewPlaceholderRow(columns int) *TableRow {
	r := NewTableRow()
	for range max(columns, 1) {
		r.InsertChild(len(r.cells), NewPlaceholderCell())
	}
	return r
}

// Cells returns the cells.
func (r *TableRow) Cells() []*TableData { return slices.Clone(r.cells) }

// Cell returns cell i.
func (r *TableRow) Cell(i int) *TableData { return r.cells[i] }

// ChildElements returns the cells.
func (r *TableRow) ChildElements() []Element {
	out := make([]Element, len(r.cells))
	for i, c := range r.cells {
		out[i] = c
	}
	return out
}

// EndPosition returns the number of cells.
func (r *TableRow) EndPosition() int { return len(r.cells) }

// ElementBefore returns the cell left of pos.
func (r *TableRow) ElementBefore(pos int) Element {
	if pos <= 0 || pos > len(r.cells) {
		return nil
	}
	return r.cells[pos-1]
}

// ElementAfter returns the cell right of pos.
func (r *TableRow) ElementAfter(pos int) Element {
	if pos < 0 || pos >= len(r.cells) {
		return nil
	}
	return r.cells[pos]
}

// PositionOfChild returns the cell index.
func (r *TableRow) PositionOfChild(child Element) int {
	for i, c := range r.cells {
		if Element(c) == child {
			return i
		}
	}
	return -1
}

func (r *TableRow) IsEmpty() bool { return len(r.cells) == 0 }
func (r *TableRow) IsInferredRow() bool { return false }

// AcceptCursor only accepts a selecting cursor, which selects whole cells.
func (r *TableRow) AcceptCursor(c Cursor) bool { return c.IsSelecting() }

// MoveCursor enters the neighbouring cell, or extends a cell selection.
func (r *TableRow) MoveCursor(c *Cursor, _ Cursor) bool {
	pos := c.Position()
	n := len(r.cells)
	switch c.Direction() {
	case MoveLeft:
		if pos <= 0 {
			return false
		}
		if c.IsSelecting() {
			c.SetPosition(pos - 1)
		} else {
			enter(c, r.cells[pos-1], true)
		}
		return true
	case MoveRight:
		if pos >= n {
			return false
		}
		if c.IsSelecting() {
			c.SetPosition(pos + 1)
		} else {
			enter(c, r.cells[pos], false)
		}
		return true
	}
	return false
}

// SetCursorTo delegates to the cell containing p, or the nearest one.
func (r *TableRow) SetCursorTo(c *Cursor, p Point) bool {
	if len(r.cells) == 0 {
		return false
	}
	best := r.cells[0]
	bestDist := best.geometry.distance(p)
	for _, cell := range r.cells {
		if cell.geometry.Contains(p) {
			return cell.SetCursorTo(c, p)
		}
		if d := cell.geometry.distance(p); d < bestDist {
			best, bestDist = cell, d
		}
	}
	return best.SetCursorTo(c, p)
}

func rowCellAllowed(e Element) bool {
	_, ok := e.(*TableData)
	return ok
}

// InsertChild inserts a cell at pos.
func (r *TableRow) InsertChild(pos int, child Element) bool {
	if pos < 0 || pos > len(r.cells) {
		return false
	}
	adopt(r, child, rowCellAllowed)
	r.cells = slices.Insert(r.cells, pos, child.(*TableData))
	return true
}

// RemoveChild detaches a cell.
func (r *TableRow) RemoveChild(child Element) bool {
	i := r.PositionOfChild(child)
	if i < 0 {
		return false
	}
	r.cells = slices.Delete(r.cells, i, i+1)
	child.setParent(nil)
	return true
}

// ReplaceChild swaps a cell.
func (r *TableRow) ReplaceChild(old, replacement Element) bool {
	i := r.PositionOfChild(old)
	if i < 0 {
		return false
	}
	old.setParent(nil)
	adopt(r, replacement, rowCellAllowed)
	r.cells[i] = replacement.(*TableData)
	return true
}

// ReadMarkup reads the cells. The label of an mlabeledtr is kept as the
// first cell. Content outside mtd is wrapped in a cell.
func (r *TableRow) ReadMarkup(n *html.Node) error {
	readAttributes(&r.attrs, n)
	for c := range elementChildren(n) {
		cell := NewTableData()
		if c.Data == "mtd" {
			if err := cell.ReadMarkup(c); err != nil {
				return err
			}
		} else if err := readSlot(&cell.Row, c); err != nil {
			return err
		}
		r.InsertChild(len(r.cells), cell)
	}
	return nil
}

// WriteMarkup writes the row.
func (r *TableRow) WriteMarkup(w *MarkupWriter) {
	w.StartElement("mtr", &r.attrs)
	for _, c := range r.cells {
		c.WriteMarkup(w)
	}
	w.EndElement()
}

// TableData is an mtd: a table cell that behaves as an inferred row.
type TableData struct {
	Row
}

// NewTableData creates an empty cell.
func NewTableData() *TableData {
	d := &TableData{}
	d.init("mtd", d)
	return d
}

// NewPlaceholderCell creates a cell holding a single placeholder.
func NewPlaceholderCell() *TableData {
	d := NewTableData()
	d.InsertChild(0, NewPlaceholder())
	return d
}

// ParentTableData returns the closest cell containing e, or nil.
func ParentTableData(e Element) *TableData {
	for ; e != nil; e = e.Parent() {
		if d, ok := e.(*TableData); ok {
			return d
		}
	}
	return nil
}
