// Package tracking keeps named snapshots of a formula and diffs against them.
//
// A snapshot stores the MathML of a formula at a document revision. Hosts
// take one before a risky operation, such as running a script, and can later
// show what changed or load the snapshot back.
//
//	sm := tracking.NewSnapshotManager()
//	id := sm.Create("before_script", doc.Root(), doc.Revision())
//
//	// ... edits ...
//
//	snap, _ := sm.Get(id)
//	fmt.Print(snap.Diff(doc.Root()))
//
// Diffs compare the structural outline of two trees (see formula.Dump), one
// element per line, so they read like a tree diff rather than a markup diff.
package tracking
