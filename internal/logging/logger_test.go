package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gosmf/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning alias", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"upper case", "DEBUG", log.DebugLevel},
		{"surrounding space", " error ", log.ErrorLevel},
		{"unknown is info", "verbose", log.InfoLevel},
		{"empty is info", "", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := logging.ParseLevel(tt.level); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
			if got := logging.New(tt.level).GetLevel(); got != tt.expected {
				t.Errorf("New(%q) level = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	if logger == nil {
		t.Fatal("Default returned nil logger")
	}
	if logging.Default() != logger {
		t.Error("Default should return the same logger on every call")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel: changes the process-wide logger.
	original := logging.Default().GetLevel()
	defer logging.Default().SetLevel(original)

	logging.SetLevel("debug")
	if got := logging.Default().GetLevel(); got != log.DebugLevel {
		t.Errorf("level after SetLevel(debug) = %v", got)
	}

	logging.SetLevel("error")
	if got := logging.Default().GetLevel(); got != log.ErrorLevel {
		t.Errorf("level after SetLevel(error) = %v", got)
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("layout done", logging.FieldNodes, 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "layout done") || !strings.Contains(out, "nodes=3") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestForCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		command     string
		wantCommand bool
	}{
		{name: "subcommand", command: "layout", wantCommand: true},
		{name: "root", command: "gosmf"},
		{name: "unnamed", command: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.ForCommand(&buf, "debug", tt.command)
			logger.Debug("laid out", logging.FieldNodes, 2)

			out := buf.String()
			if !strings.Contains(out, logging.Prefix) {
				t.Errorf("output %q lacks the %q prefix", out, logging.Prefix)
			}
			if got := strings.Contains(out, "command="); got != tt.wantCommand {
				t.Errorf("command field present = %v, want %v in %q", got, tt.wantCommand, out)
			}
			if tt.wantCommand && !strings.Contains(out, "command="+tt.command) {
				t.Errorf("output %q does not name command %q", out, tt.command)
			}
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("FromContext without a logger should return the default logger")
	}

	//nolint:staticcheck // a nil context must fall back to the default logger
	if logging.FromContext(nil) != logging.Default() {
		t.Error("FromContext(nil) should return the default logger")
	}

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)
	if logging.FromContext(ctx) != logger {
		t.Error("FromContext did not return the attached logger")
	}
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info"))
	ctx = logging.WithFields(ctx, logging.FieldPath, "main.smf")

	logging.FromContext(ctx).Info("watching for changes")

	out := buf.String()
	if !strings.Contains(out, "watching for changes") || !strings.Contains(out, "path=main.smf") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	if logger == nil {
		t.Fatal("NewInteractive returned nil logger")
	}
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("expected info level, got %v", logger.GetLevel())
	}
}
