// Package engine provides the core of the MathML formula editor.
//
// The engine package serves as the main facade, combining the formula
// document, the editing session, undo/redo history and snapshots into a
// unified, thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - command: Reversible edits on the formula tree
//   - editor: Turns typing, templates and deletions into commands
//   - history: Command-based undo/redo system with grouping
//   - tracking: Named snapshots and outline diffs
//
// The element tree itself lives in the formula package and geometry in the
// layout package.
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing edits.
//
// # Basic Usage
//
//	e, err := engine.New(engine.WithMarkup("<math><mi>x</mi></math>"))
//	if err != nil {
//		return err
//	}
//	e.Move(engine.MoveRight)
//	_ = e.InsertText("+")
//	fmt.Println(e.Markup())
//
// # Undo Groups
//
// Group several edits so they undo together:
//
//	err := e.Transaction("fraction", func() error {
//		if err := e.InsertTemplate("mfrac"); err != nil {
//			return err
//		}
//		return e.InsertText("1")
//	})
//
// A failing transaction reverts its edits.
package engine
