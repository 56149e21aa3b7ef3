package history

import (
	"github.com/dshills/mathedit/internal/engine/command"
	"github.com/dshills/mathedit/internal/formula"
)

// BeginGroup starts a command group.
// Commands pushed while grouping will be combined into a single undo unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
// All commands since BeginGroup are combined into a command.Compound.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}

	h.grouping = false
	cmds := h.groupCmds
	h.groupCmds = nil

	switch len(cmds) {
	case 0:
		return
	case 1:
		h.pushLocked(cmds[0])
	default:
		h.pushLocked(command.NewCompound(h.groupName, cmds...))
	}
}

// CancelGroup ends a command group without adding to history.
// Note: Commands already executed still affect the document!
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupCmds = nil
}

// AbortGroup ends a command group and reverts its commands. It returns the
// cursor from before the group and false if nothing was reverted.
func (h *History) AbortGroup() (formula.Cursor, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cmds := h.groupCmds
	h.grouping = false
	h.groupCmds = nil
	if len(cmds) == 0 {
		return formula.Cursor{}, false
	}
	return command.NewCompound(h.groupName, cmds...).Revert(), true
}

// IsGrouping returns true if currently in a command group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// GroupScope provides a convenient way to group commands using defer.
// Usage:
//
//	func insertMatrix(h *History) {
//	    defer h.GroupScope("Insert matrix").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without creating a compound command.
// Note: Commands already executed still affect the document.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Transaction executes a function within a grouped undo context.
// If the function returns an error, the group's edits are reverted.
// Otherwise, the group is ended normally.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		h.AbortGroup()
		return err
	}

	h.EndGroup()
	return nil
}

// ExecuteGrouped applies multiple commands as a single undo unit and
// returns the final cursor.
func (h *History) ExecuteGrouped(name string, cmds ...command.Command) formula.Cursor {
	if len(cmds) == 0 {
		return formula.Cursor{}
	}

	if len(cmds) == 1 {
		// Single command doesn't need grouping
		return h.Execute(cmds[0])
	}

	h.BeginGroup(name)
	var cur formula.Cursor
	for _, cmd := range cmds {
		cur = h.Execute(cmd)
	}
	h.EndGroup()
	return cur
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes all operations since the checkpoint and returns
// the last undo cursor.
func (h *History) UndoToCheckpoint(cp Checkpoint) (formula.Cursor, error) {
	var cur formula.Cursor
	for h.UndoCount() > cp.undoDepth {
		c, err := h.Undo()
		if err != nil {
			return cur, err
		}
		cur = c
	}
	return cur, nil
}

// RedoToCheckpoint redoes all operations up to the checkpoint depth.
// Note: This only works if the redo stack has the operations.
func (h *History) RedoToCheckpoint(cp Checkpoint) (formula.Cursor, error) {
	var cur formula.Cursor
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		c, err := h.Redo()
		if err != nil {
			return cur, err
		}
		cur = c
	}
	return cur, nil
}
