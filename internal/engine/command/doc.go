// Package command provides the reversible edit commands of the formula
// editor.
//
// Every structural change to a formula goes through a Command. A command is
// built against the current tree, captures everything it needs to undo
// itself, and is then applied and reverted any number of times in strict
// alternation:
//
//	cmd := command.NewReplaceElements(row, 2, 0, []formula.Element{tok}, false)
//	cursor := cmd.Apply()  // tok is now in the row
//	cursor = cmd.Revert()  // the row is back as it was
//
// # Ownership
//
// A command either holds detached subtrees (before Apply and after Revert)
// or has released them to the live tree (after Apply). Applying an applied
// command or reverting an unapplied one is a programming error and panics.
//
// # Commands
//
//   - ReplaceText: replace a span of text in a token
//   - ReplaceElements: replace children of a row, optionally wrapping the
//     removed children into a placeholder of the inserted elements
//   - ReplaceRow, ReplaceColumn: insert or remove table rows and columns
//   - Load: swap the document root
//   - Compound: several commands as one undo unit
//
// # Cursors
//
// Apply returns the redo cursor and Revert the undo cursor. Both are chosen
// when the command is built; callers may override them.
package command
