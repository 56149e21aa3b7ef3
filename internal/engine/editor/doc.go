// Package editor turns editing intents into commands.
//
// An Editor owns the live cursor of one editing session and a reference to
// the document it edits. Each editing operation inspects where the cursor is
// (inside a token, inside a row, inside a table cell) and builds the matching
// command.Command. The editor never applies a command itself:
//
//	ed := editor.New(doc)
//	if cmd := ed.InsertText("x"); cmd != nil {
//	    ed.SetCursor(history.Execute(cmd))
//	}
//
// A nil command means the edit does not make sense at the cursor; nothing
// should be applied. Commands carry the cursor to restore on undo, so a host
// that sets the cursor from Apply and Revert results gets exact round trips.
package editor
