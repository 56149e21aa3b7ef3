package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "MATHEDIT_"

// Config holds all settings.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Log    LogConfig    `toml:"log"`
	Script ScriptConfig `toml:"script"`
}

// EditorConfig configures the editing engine.
type EditorConfig struct {
	// MaxUndoEntries bounds the undo stack.
	MaxUndoEntries int `toml:"max_undo_entries"`

	// NormalizeText applies NFC to typed text.
	NormalizeText bool `toml:"normalize_text"`

	// ReadOnly rejects every edit.
	ReadOnly bool `toml:"read_only"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "console" or "json".
	Format string `toml:"format"`
}

// ScriptConfig configures Lua scripts.
type ScriptConfig struct {
	// Timeout bounds a single script run. Zero disables it.
	Timeout Duration `toml:"timeout"`

	// CallStackSize bounds the Lua call depth.
	CallStackSize int `toml:"call_stack_size"`
}

// Duration is a time.Duration written as a string like "5s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			MaxUndoEntries: 1000,
			NormalizeText:  true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Script: ScriptConfig{
			Timeout:       Duration(5 * time.Second),
			CallStackSize: 256,
		},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if cfg, err = Parse(data, path); err != nil {
				return cfg, err
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML data over the defaults. Unknown keys are errors.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return Default(), pe
	}
	return cfg, nil
}

// ApplyEnv overrides settings from MATHEDIT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvPrefix + "MAX_UNDO_ENTRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_UNDO_ENTRIES: %w", EnvPrefix, err)
		}
		c.Editor.MaxUndoEntries = n
	}
	if v, ok := lookup(EnvPrefix + "READ_ONLY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sREAD_ONLY: %w", EnvPrefix, err)
		}
		c.Editor.ReadOnly = b
	}
	if v, ok := lookup(EnvPrefix + "SCRIPT_TIMEOUT"); ok {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sSCRIPT_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Script.Timeout = d
	}
	return nil
}

// Validate checks setting ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Editor.MaxUndoEntries < 1 {
		errs = append(errs, &ValidationError{Path: "editor.max_undo_entries", Message: "must be positive", Value: c.Editor.MaxUndoEntries})
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level})
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, &ValidationError{Path: "log.format", Message: "must be console or json", Value: c.Log.Format})
	}
	if c.Script.Timeout < 0 {
		errs = append(errs, &ValidationError{Path: "script.timeout", Message: "must not be negative", Value: time.Duration(c.Script.Timeout)})
	}
	if c.Script.CallStackSize < 1 {
		errs = append(errs, &ValidationError{Path: "script.call_stack_size", Message: "must be positive", Value: c.Script.CallStackSize})
	}
	return errors.Join(errs...)
}
