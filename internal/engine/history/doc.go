// Package history provides undo/redo for formula edits.
//
// The history keeps applied commands on an undo stack and reverted ones on
// a redo stack. Every operation returns the cursor the editor should show
// afterwards. Key concepts:
//
// # History Stack
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	cursor := h.Execute(cmd)      // apply and record
//	cursor, err := h.Undo()
//	cursor, err = h.Redo()
//
// Executing a new command clears the redo stack. When the stack grows past
// its limit the oldest entries are dropped.
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	h.BeginGroup("Insert matrix")
//	// ... several edits ...
//	h.EndGroup()
//
// The group is recorded as one command.Compound. CancelGroup keeps the
// edits but records nothing; AbortGroup reverts them.
//
// # Entries
//
// Each entry gets a UUID and a timestamp so hosts can list and address
// history entries.
package history
