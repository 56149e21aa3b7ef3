package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mathedit/internal/engine/command"
	"github.com/dshills/mathedit/internal/formula"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when a non-positive limit is given.
const DefaultMaxEntries = 1000

// undoEntry wraps a command with metadata.
type undoEntry struct {
	id        uuid.UUID
	command   command.Command
	timestamp time.Time
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{
		ID:          e.id,
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []command.Command

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Execute applies a command, adds it to the undo stack and returns the
// cursor to show.
func (h *History) Execute(cmd command.Command) formula.Cursor {
	cur := cmd.Apply()
	h.Push(cmd)
	return cur
}

// Push adds an applied command to the undo stack.
// Clears the redo stack.
func (h *History) Push(cmd command.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}

	h.pushLocked(cmd)
}

// pushLocked adds a command without acquiring the lock.
func (h *History) pushLocked(cmd command.Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		id:        uuid.New(),
		command:   cmd,
		timestamp: time.Now(),
	})

	// Reverted commands hold detached subtrees that can never come back.
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last command and returns its undo cursor. While a group
// is open only the group's own commands can be undone; they are dropped
// rather than moved to the redo stack.
func (h *History) Undo() (formula.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		n := len(h.groupCmds)
		if n == 0 {
			return formula.Cursor{}, ErrNothingToUndo
		}
		cmd := h.groupCmds[n-1]
		h.groupCmds = h.groupCmds[:n-1]
		return cmd.Revert(), nil
	}

	if len(h.undoStack) == 0 {
		return formula.Cursor{}, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cur := entry.command.Revert()
	h.redoStack = append(h.redoStack, entry)
	return cur, nil
}

// Redo re-applies the last undone command and returns its redo cursor.
func (h *History) Redo() (formula.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping || len(h.redoStack) == 0 {
		return formula.Cursor{}, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cur := entry.command.Apply()
	h.undoStack = append(h.undoStack, entry)
	return cur, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.undoStack))
	for i, entry := range h.undoStack {
		result[i] = entry.info()
	}
	return result
}

// RedoInfo returns info about available redo operations, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.redoStack))
	for i, entry := range h.redoStack {
		result[i] = entry.info()
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping || len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// OperationInfo provides read-only info about a history entry.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	ID          uuid.UUID // Stable entry identifier
	Description string    // Human-readable description
	Timestamp   time.Time // When the command was recorded
}
