package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/mathedit/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("edit applied")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "edit applied" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("undo")
	if !strings.Contains(buf.String(), "DEBUG") || !strings.Contains(buf.String(), "undo") {
		t.Errorf("console output = %q", buf.String())
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("New with an unknown level should fail")
	}
}
