package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if cfg.Editor.MaxUndoEntries != 1000 || !cfg.Editor.NormalizeText {
		t.Errorf("editor defaults = %+v", cfg.Editor)
	}
	if time.Duration(cfg.Script.Timeout) != 5*time.Second {
		t.Errorf("script timeout = %v", time.Duration(cfg.Script.Timeout))
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[editor]
max_undo_entries = 50
read_only = true

[log]
level = "debug"
format = "json"

[script]
timeout = "250ms"
`)
	cfg, err := Parse(data, "test.toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Editor.MaxUndoEntries = 50
	want.Editor.ReadOnly = true
	want.Log = LogConfig{Level: "debug", Format: "json"}
	want.Script.Timeout = Duration(250 * time.Millisecond)
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantLine int
	}{
		{"syntax", "[editor]\nmax_undo_entries = = 3\n", 2},
		{"unknown key", "[editor]\ntab_size = 4\n", 0},
		{"bad duration", "[script]\ntimeout = \"soon\"\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "bad.toml")
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse error = %v, want *ParseError", err)
			}
			if pe.Path != "bad.toml" {
				t.Errorf("Path = %q", pe.Path)
			}
			if tt.wantLine > 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Editor != Default().Editor {
			t.Errorf("missing file should give default editor settings, got %+v", cfg.Editor)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mathedit.toml")
		if err := os.WriteFile(path, []byte("[log]\nlevel = \"info\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvPrefix+"LOG_LEVEL", "error")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Log.Level != "error" {
			t.Errorf("Log.Level = %q, environment should win", cfg.Log.Level)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mathedit.toml")
		if err := os.WriteFile(path, []byte("[editor]\nmax_undo_entries = 0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Load error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MATHEDIT_LOG_FORMAT":       "json",
		"MATHEDIT_MAX_UNDO_ENTRIES": "7",
		"MATHEDIT_READ_ONLY":        "true",
		"MATHEDIT_SCRIPT_TIMEOUT":   "1s",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Log.Format != "json" || cfg.Editor.MaxUndoEntries != 7 || !cfg.Editor.ReadOnly ||
		time.Duration(cfg.Script.Timeout) != time.Second {
		t.Errorf("ApplyEnv result = %+v", cfg)
	}

	env["MATHEDIT_MAX_UNDO_ENTRIES"] = "many"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("ApplyEnv with a bad number should fail")
	}

	cfg = Default()
	if err := cfg.ApplyEnv(noEnv); err != nil || cfg != Default() {
		t.Errorf("ApplyEnv without variables changed %+v, %v", cfg, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"undo", func(c *Config) { c.Editor.MaxUndoEntries = 0 }, "editor.max_undo_entries"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"timeout", func(c *Config) { c.Script.Timeout = -1 }, "script.timeout"},
		{"stack", func(c *Config) { c.Script.CallStackSize = 0 }, "script.call_stack_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("Path = %q, want %q", ve.Path, tt.path)
			}
		})
	}
}
