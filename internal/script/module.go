package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathedit/internal/engine"
)

var directions = map[string]engine.Direction{
	"left":  engine.MoveLeft,
	"right": engine.MoveRight,
	"up":    engine.MoveUp,
	"down":  engine.MoveDown,
}

// formulaModule implements the formula table exposed to scripts.
type formulaModule struct {
	eng *engine.Engine
}

// register installs the module as the global "formula".
func (m *formulaModule) register(L *lua.LState) {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"move":            m.move,
		"select":          m.selectDir,
		"insert_text":     m.insertText,
		"insert_markup":   m.insertMarkup,
		"insert_template": m.insertTemplate,
		"remove":          m.remove,
		"change_table":    m.changeTable,
		"undo":            m.undo,
		"redo":            m.redo,
		"load":            m.load,
		"markup":          m.markup,
		"cursor":          m.cursor,
	})
	L.SetGlobal("formula", mod)
}

func checkDirection(L *lua.LState, n int) engine.Direction {
	name := L.CheckString(n)
	d, ok := directions[name]
	if !ok {
		L.ArgError(n, "unknown direction "+name)
	}
	return d
}

// result pushes true on success and false when the edit was rejected at
// the cursor. Any other error is raised.
func result(L *lua.LState, err error) int {
	switch {
	case err == nil:
		L.Push(lua.LTrue)
	case errors.Is(err, engine.ErrNoCommand),
		errors.Is(err, engine.ErrNothingToUndo),
		errors.Is(err, engine.ErrNothingToRedo):
		L.Push(lua.LFalse)
	default:
		L.RaiseError("%s", err.Error())
	}
	return 1
}

// move(dir) -> bool
func (m *formulaModule) move(L *lua.LState) int {
	L.Push(lua.LBool(m.eng.Move(checkDirection(L, 1))))
	return 1
}

// select(dir) -> bool
func (m *formulaModule) selectDir(L *lua.LState) int {
	L.Push(lua.LBool(m.eng.Select(checkDirection(L, 1))))
	return 1
}

// insert_text(s) -> bool
func (m *formulaModule) insertText(L *lua.LState) int {
	return result(L, m.eng.InsertText(L.CheckString(1)))
}

// insert_markup(s) -> bool
func (m *formulaModule) insertMarkup(L *lua.LState) int {
	return result(L, m.eng.InsertMarkup(L.CheckString(1)))
}

// insert_template(tag) -> bool
func (m *formulaModule) insertTemplate(L *lua.LState) int {
	return result(L, m.eng.InsertTemplate(L.CheckString(1)))
}

// remove([before=true]) -> bool
func (m *formulaModule) remove(L *lua.LState) int {
	before := L.OptBool(1, true)
	return result(L, m.eng.Remove(before))
}

// change_table(insert, rows) -> bool
func (m *formulaModule) changeTable(L *lua.LState) int {
	return result(L, m.eng.ChangeTable(L.CheckBool(1), L.CheckBool(2)))
}

// undo() -> bool
func (m *formulaModule) undo(L *lua.LState) int {
	return result(L, m.eng.Undo())
}

// redo() -> bool
func (m *formulaModule) redo(L *lua.LState) int {
	return result(L, m.eng.Redo())
}

// load(markup) -> bool
func (m *formulaModule) load(L *lua.LState) int {
	return result(L, m.eng.Load(L.CheckString(1)))
}

// markup() -> string
func (m *formulaModule) markup(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Markup()))
	return 1
}

// cursor() -> {element, position, selecting}
func (m *formulaModule) cursor(L *lua.LState) int {
	c := m.eng.Cursor()
	tbl := L.NewTable()
	if el := c.CurrentElement(); el != nil {
		tbl.RawSetString("element", lua.LString(el.Tag()))
	}
	tbl.RawSetString("position", lua.LNumber(c.Position()))
	tbl.RawSetString("selecting", lua.LBool(c.HasSelection()))
	L.Push(tbl)
	return 1
}
