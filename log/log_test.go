package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.config.level != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.config.level)
	}

	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.config.format != FormatJSON {
		t.Errorf("expected default format JSON, got %v", logger.config.format)
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()

	logger2 := Make(&buf, WithLevel(LevelError))
	logger2.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_TraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))

	logger.Trace("trace message")

	output := buf.String()
	if !strings.Contains(output, "trace message") {
		t.Error("trace message not logged at Trace level")
	}

	if !strings.Contains(output, "TRACE") {
		t.Errorf("expected level TRACE in output, got: %s", output)
	}

	buf.Reset()

	logger2 := Make(&buf, WithLevel(LevelDebug))
	logger2.Trace("hidden")

	if buf.Len() > 0 {
		t.Error("trace message logged when level is Debug")
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	// Must not panic and must not write anywhere.
	logger.Trace("a")
	logger.Debug("b")
	logger.Info("c")
	logger.Warn("d")
	logger.Error("e")
	logger.TraceContext(context.Background(), "f")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format, got %v", logger.Format())
	}
}

func TestLogger_Make_WithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger.Info("json test", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if entry["msg"] != "json test" {
		t.Errorf("expected msg field, got %v", entry)
	}

	if entry["key"] != "value" {
		t.Errorf("expected key attribute, got %v", entry)
	}
}

func TestLogger_Make_WithFormat_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
	logger.Info("text test", slog.Int("n", 7))

	output := buf.String()
	if !strings.Contains(output, "msg=") {
		t.Errorf("expected text format, got: %s", output)
	}

	if !strings.Contains(output, "n=7") {
		t.Errorf("expected attribute in output, got: %s", output)
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false)).
		With(slog.String("component", "translate"))

	logger.Info("message")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected attached attribute, got: %s", buf.String())
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError))

	wrapped := logger.Wrap(WithLevel(LevelDebug))

	wrapped.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Error("wrapped logger did not apply new level")
	}

	buf.Reset()

	// The original logger keeps its configuration.
	logger.Debug("still hidden")

	if buf.Len() > 0 {
		t.Error("original logger affected by Wrap")
	}
}

func TestLogger_Make_WithTimeLayout_None(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithPretty(false))
	logger.Info("hello")

	if strings.Contains(buf.String(), "time") {
		t.Errorf("expected no timestamp, got: %s", buf.String())
	}
}

func TestLogger_Make_WithCaller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "source") {
		t.Error("caller info not included when enabled")
	}
}
