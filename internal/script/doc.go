// Package script runs Lua scripts against a formula editing session.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, and file or chunk loaders are
// removed. A global formula table drives the bound engine:
//
//	formula.insert_template("mfrac")
//	formula.insert_text("1")
//	formula.move("down")
//	formula.insert_text("2")
//	print(formula.markup())
//
// Each run is recorded as a single undo unit. A script that raises an
// error or exceeds its timeout has its edits reverted.
//
// gopher-lua states are not goroutine-safe; a Runner serializes its runs.
package script
