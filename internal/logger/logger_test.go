package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerboseGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	t.Run("debug suppressed when quiet", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)
		Debug("hidden %s", "message")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("debug printed when verbose", func(t *testing.T) {
		buf.Reset()
		SetVerbose(true)
		Debug("shown %s", "message")
		if !strings.Contains(buf.String(), "[DEBUG] shown message") {
			t.Errorf("expected debug line, got %q", buf.String())
		}
	})

	t.Run("warn printed when quiet", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)
		Warn("archive failed: %s", "disk full")
		if !strings.Contains(buf.String(), "[WARN] archive failed: disk full") {
			t.Errorf("expected warn line, got %q", buf.String())
		}
	})

	t.Run("error printed when quiet", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)
		Error("boom")
		if !strings.Contains(buf.String(), "[ERROR] boom") {
			t.Errorf("expected error line, got %q", buf.String())
		}
	})

	t.Run("section header", func(t *testing.T) {
		buf.Reset()
		SetVerbose(true)
		Section("Indexing")
		if !strings.Contains(buf.String(), "=== Indexing ===") {
			t.Errorf("expected section header, got %q", buf.String())
		}
	})
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be enabled")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be disabled")
	}
}
