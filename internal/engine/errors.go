package engine

import (
	"errors"

	"github.com/dshills/mathedit/internal/engine/history"
	"github.com/dshills/mathedit/internal/engine/tracking"
)

// Errors returned by engine operations.
var (
	// ErrNoCommand indicates the edit makes no sense at the cursor.
	ErrNoCommand = errors.New("edit not possible at cursor")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = tracking.ErrSnapshotNotFound

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrInvalidCursor indicates a cursor outside the document.
	ErrInvalidCursor = errors.New("cursor not in document")
)
