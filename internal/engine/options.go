package engine

import (
	"go.uber.org/zap"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMarkup sets the initial formula.
func WithMarkup(markup string) Option {
	return func(e *Engine) {
		e.initMarkup = markup
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithLogger sets the logger for edit events.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNormalization enables or disables NFC normalization of typed text.
func WithNormalization(enabled bool) Option {
	return func(e *Engine) {
		e.normalize = enabled
	}
}

// WithReadOnly makes the engine read-only.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
