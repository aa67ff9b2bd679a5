package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reelfx/internal/logging"
	"reelfx/internal/reqctx"
	"reelfx/internal/testsupport"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "reelfx.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerFormatsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "engine").Info("effect created", logging.EffectID("blur-1"))

	line := buf.String()
	if !strings.Contains(line, "engine: effect created") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "effect_id=blur-1") {
		t.Fatalf("expected effect id field, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information, got %q", buf.String())
	}
}

func TestJSONLoggerIncludesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := reqctx.WithRequestID(reqctx.WithSessionID(context.Background(), "sess-9"), "req-1")
	ctx = reqctx.WithFrame(ctx, 12)
	logging.WithContext(ctx, logger).Info("frame rendered")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["session_id"] != "sess-9" || payload["request_id"] != "req-1" || payload["frame"] != float64(12) {
		t.Fatalf("missing context fields: %v", payload)
	}
	if payload["level"] != "info" {
		t.Fatalf("level = %v, want info", payload["level"])
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	logging.WarnWithContext(logger, "layer limit reached", "layer_capacity")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	for _, key := range []string{logging.FieldEventType, logging.FieldErrorHint, logging.FieldImpact} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("expected %s in warning, got %v", key, payload)
		}
	}
	if payload[logging.FieldEventType] != "layer_capacity" {
		t.Fatalf("event_type = %v", payload[logging.FieldEventType])
	}
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := logging.New(logging.Options{Level: "chatty", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestConsoleLoggerFormatsDurationsAndIDLists(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("frame rendered",
		logging.Duration("render_time", 1500*time.Nanosecond),
		logging.Duration("budget", 1234567*time.Nanosecond),
		logging.Any("effect_ids", []string{"blur-1", "time-2"}),
	)
	line := buf.String()
	for _, want := range []string{"render_time=1µs", "budget=1.235ms", "effect_ids=[blur-1,time-2]"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}
