// Package config loads mathedit settings from TOML.
//
// Settings are layered: built-in defaults, then the TOML file, then
// MATHEDIT_* environment variables. A missing file is not an error.
//
//	[editor]
//	max_undo_entries = 500
//	normalize_text = true
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[script]
//	timeout = "2s"
//	call_stack_size = 128
package config
