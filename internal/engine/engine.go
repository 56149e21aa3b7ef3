package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/mathedit/internal/engine/command"
	"github.com/dshills/mathedit/internal/engine/editor"
	"github.com/dshills/mathedit/internal/engine/history"
	"github.com/dshills/mathedit/internal/engine/tracking"
	"github.com/dshills/mathedit/internal/formula"
	"github.com/dshills/mathedit/internal/layout"
)

// Re-export commonly used types for convenience.
type (
	// Cursor is a position in the formula tree.
	Cursor = formula.Cursor

	// Direction is a cursor movement direction.
	Direction = formula.Direction

	// Point is a position in layout coordinates.
	Point = formula.Point

	// Geometry is a layout box.
	Geometry = formula.Geometry

	// Command is an undoable edit.
	Command = command.Command

	// OperationInfo describes a history entry.
	OperationInfo = history.OperationInfo

	// Snapshot is a named checkpoint of the formula.
	Snapshot = tracking.Snapshot
)

// Re-export constants.
const (
	MoveLeft  = formula.MoveLeft
	MoveRight = formula.MoveRight
	MoveUp    = formula.MoveUp
	MoveDown  = formula.MoveDown
)

// Engine is the main facade of the formula editor. It combines the
// document, the editing session, undo/redo history and snapshots into a
// single API.
//
// All operations are thread-safe. Each public method runs as one unit, so
// commands are applied and reverted atomically from the caller's view.
type Engine struct {
	mu sync.RWMutex

	// Core components
	doc       *formula.Document
	editor    *editor.Editor
	history   *history.History
	snapshots *tracking.SnapshotManager
	layout    *layout.Engine
	logger    *zap.Logger

	// Configuration
	maxUndoEntries int
	normalize      bool
	readOnly       bool

	// Initialization
	initMarkup string
}

// New creates a new Engine with the given options. It fails when the
// initial markup cannot be parsed.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		normalize:      true,
		logger:         zap.NewNop(),
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(e)
	}

	e.doc = formula.NewDocument()
	if e.initMarkup != "" {
		doc, err := formula.NewDocumentFromMarkup(e.initMarkup)
		if err != nil {
			return nil, fmt.Errorf("load initial markup: %w", err)
		}
		e.doc = doc
	}

	e.editor = editor.New(e.doc, editor.WithNormalization(e.normalize))
	e.history = history.NewHistory(e.maxUndoEntries)
	e.snapshots = tracking.NewSnapshotManager()
	e.layout = layout.New()
	return e, nil
}

// NewFromReader creates an Engine from MathML read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markup: %w", err)
	}
	return New(append(opts, WithMarkup(string(data)))...)
}

// ============================================================================
// Read Operations
// ============================================================================

// ID returns the document identifier.
func (e *Engine) ID() uuid.UUID {
	return e.doc.ID()
}

// Markup returns the formula as MathML.
func (e *Engine) Markup() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return formula.Markup(e.doc.Root())
}

// WriteTo writes the formula as MathML to w.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	mw := formula.NewMarkupWriter()
	e.doc.Root().WriteMarkup(mw)
	return mw.WriteTo(w)
}

// Dump returns the structural outline of the formula.
func (e *Engine) Dump() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return formula.Dump(e.doc.Root())
}

// Revision returns a counter bumped on every change.
func (e *Engine) Revision() uint64 {
	return e.doc.Revision()
}

// Validate checks the tree invariants of the formula.
func (e *Engine) Validate() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return formula.Validate(e.doc.Root())
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Cursor Operations
// ============================================================================

// Cursor returns a copy of the cursor.
func (e *Engine) Cursor() Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.editor.Cursor()
}

// SetCursor replaces the cursor.
func (e *Engine) SetCursor(c Cursor) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editor.SetCursor(c) {
		return ErrInvalidCursor
	}
	return nil
}

// Move moves the cursor one step, dropping any selection. It reports
// whether the cursor moved.
func (e *Engine) Move(d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor.Move(d, false)
}

// Select extends the selection one step.
func (e *Engine) Select(d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor.Move(d, true)
}

// SetCursorTo lays out the formula and places the cursor nearest to p.
func (e *Engine) SetCursorTo(p Point) Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout.Compute(e.doc.Root())
	e.editor.SetCursorTo(p)
	return e.editor.Cursor()
}

// Layout computes geometry for the formula and returns the root box.
func (e *Engine) Layout() Geometry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Compute(e.doc.Root())
}

// ============================================================================
// Edit Operations
// ============================================================================

// InsertText types s at the cursor.
func (e *Engine) InsertText(s string) error {
	return e.edit("insert text", func() (command.Command, error) {
		return e.editor.InsertText(s), nil
	})
}

// InsertMarkup inserts a MathML fragment at the cursor.
func (e *Engine) InsertMarkup(markup string) error {
	return e.edit("insert markup", func() (command.Command, error) {
		return e.editor.InsertMarkup(markup)
	})
}

// InsertTemplate inserts an empty element for tag, wrapping the selection.
func (e *Engine) InsertTemplate(tag string) error {
	return e.edit("insert "+tag, func() (command.Command, error) {
		return e.editor.InsertTemplate(tag), nil
	})
}

// Remove deletes the selection or the character or element before (before
// set) or after the cursor.
func (e *Engine) Remove(before bool) error {
	return e.edit("remove", func() (command.Command, error) {
		return e.editor.Remove(before), nil
	})
}

// ChangeTable inserts or removes a row or column of the table around the
// cursor.
func (e *Engine) ChangeTable(insert, rows bool) error {
	return e.edit("change table", func() (command.Command, error) {
		return e.editor.ChangeTable(insert, rows), nil
	})
}

// Load replaces the whole formula. The replacement can be undone.
func (e *Engine) Load(markup string) error {
	return e.edit("load", func() (command.Command, error) {
		return e.editor.Load(markup)
	})
}

// Execute applies a command built by the caller and records it.
func (e *Engine) Execute(cmd Command) error {
	return e.edit("execute", func() (command.Command, error) {
		return cmd, nil
	})
}

// edit builds a command under the lock, applies it and records it.
func (e *Engine) edit(op string, build func() (command.Command, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	cmd, err := build()
	if err != nil {
		e.logger.Debug("edit failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmd == nil {
		e.logger.Debug("edit rejected",
			zap.String("op", op),
			zap.Stringer("cursor", e.editor.Cursor()))
		return fmt.Errorf("%s: %w", op, ErrNoCommand)
	}

	cur := cmd.Apply()

	// Collapse rows the edit left degenerate, as part of the same undo unit.
	prune := command.NewPrune(e.doc.Root(), cur)
	if pc := prune.Apply(); prune.Len() > 0 {
		cmd = command.NewCompound(cmd.Description(), cmd, prune)
		cur = pc
	}
	e.history.Push(cmd)
	e.moveTo(cur)
	e.logger.Debug("edit applied",
		zap.String("op", op),
		zap.String("description", cmd.Description()),
		zap.Uint64("revision", e.doc.Revision()))
	return nil
}

// moveTo records a change and moves the cursor to c.
func (e *Engine) moveTo(c Cursor) {
	e.doc.Touch()
	if !e.editor.SetCursor(c) {
		e.logger.Warn("command cursor not in document, resetting",
			zap.Stringer("cursor", c))
		e.editor.Reset()
	}
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last operation.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	c, err := e.history.Undo()
	if err != nil {
		return err
	}
	e.moveTo(c)
	e.logger.Debug("undo", zap.Uint64("revision", e.doc.Revision()))
	return nil
}

// Redo redoes the last undone operation.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	c, err := e.history.Redo()
	if err != nil {
		return err
	}
	e.moveTo(c)
	e.logger.Debug("redo", zap.Uint64("revision", e.doc.Revision()))
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// UndoInfo describes the undo stack, oldest first.
func (e *Engine) UndoInfo() []OperationInfo {
	return e.history.UndoInfo()
}

// BeginUndoGroup starts a new undo group.
// All operations until EndUndoGroup will be undone as a single unit.
func (e *Engine) BeginUndoGroup(name string) {
	e.history.BeginGroup(name)
}

// EndUndoGroup ends the current undo group.
func (e *Engine) EndUndoGroup() {
	e.history.EndGroup()
}

// CancelUndoGroup cancels the current undo group without recording.
// The grouped edits stay applied.
func (e *Engine) CancelUndoGroup() {
	e.history.CancelGroup()
}

// AbortUndoGroup reverts the edits of the current undo group and discards
// the group.
func (e *Engine) AbortUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.history.AbortGroup(); ok {
		e.moveTo(c)
		e.logger.Debug("undo group aborted", zap.Uint64("revision", e.doc.Revision()))
	}
}

// Transaction runs fn as a single undo unit. If fn fails, its edits are
// reverted.
func (e *Engine) Transaction(name string, fn func() error) error {
	e.BeginUndoGroup(name)
	if err := fn(); err != nil {
		e.AbortUndoGroup()
		return err
	}
	e.EndUndoGroup()
	return nil
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// Snapshots
// ============================================================================

// CreateSnapshot records the current formula under name.
func (e *Engine) CreateSnapshot(name string) uuid.UUID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshots.Create(name, e.doc.Root(), e.doc.Revision())
}

// Snapshots returns all snapshots, oldest first.
func (e *Engine) Snapshots() []*Snapshot {
	return e.snapshots.List()
}

// DiffSinceSnapshot returns the outline diff between a snapshot and the
// current formula.
func (e *Engine) DiffSinceSnapshot(id uuid.UUID) (string, error) {
	snap, ok := e.snapshots.Get(id)
	if !ok {
		return "", ErrSnapshotNotFound
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snap.Diff(e.doc.Root()), nil
}

// RestoreSnapshot loads a snapshot back as an undoable edit.
func (e *Engine) RestoreSnapshot(id uuid.UUID) error {
	snap, ok := e.snapshots.Get(id)
	if !ok {
		return ErrSnapshotNotFound
	}
	return e.Load(snap.Markup())
}
