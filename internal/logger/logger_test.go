package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}
}

func TestNewWithWriterTagsService(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Info("order placed", slog.String("invoice", "INV-1"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["service"] != serviceName {
		t.Errorf("expected service %q, got %v", serviceName, record["service"])
	}
	if record["invoice"] != "INV-1" {
		t.Errorf("expected invoice attribute, got %v", record["invoice"])
	}
	if record["msg"] != "order placed" {
		t.Errorf("unexpected message: %v", record["msg"])
	}
}
