package script

import "errors"

// Errors for script execution.
var (
	// ErrRunnerClosed is returned when running on a closed runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrTimeout is returned when a script exceeds its time budget.
	ErrTimeout = errors.New("script timeout")
)
