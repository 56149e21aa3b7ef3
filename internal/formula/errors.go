package formula

import (
	"errors"
	"fmt"
)

// Errors returned by markup and lookup operations.
var (
	// ErrNoMath indicates markup that does not contain a <math> element.
	ErrNoMath = errors.New("no math element found")

	// ErrUnknownElement indicates a tag the factory does not know.
	ErrUnknownElement = errors.New("unknown element")

	// ErrNotInTable indicates a table operation outside of a table cell.
	ErrNotInTable = errors.New("cursor is not inside a table")
)

// MarkupError describes a failure while reading MathML.
type MarkupError struct {
	// Tag is the element being read when the failure occurred.
	Tag string

	// Message describes the problem.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *MarkupError) Error() string {
	msg := e.Message
	if e.Tag != "" {
		msg = fmt.Sprintf("<%s>: %s", e.Tag, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("markup: %s: %v", msg, e.Err)
	}
	return "markup: " + msg
}

// Unwrap returns the underlying error.
func (e *MarkupError) Unwrap() error {
	return e.Err
}

func markupErrorf(tag, format string, args ...any) *MarkupError {
	return &MarkupError{Tag: tag, Message: fmt.Sprintf(format, args...)}
}
