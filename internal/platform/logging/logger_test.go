package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriterWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "debug", Fields: map[string]string{"service": "portfolio"}}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hello")
	_ = logger.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode entry %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg = %v, want hello", entry["msg"])
	}
	if entry["service"] != "portfolio" {
		t.Fatalf("service = %v, want portfolio", entry["service"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestNewWithWriterFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "warn", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info entry leaked: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn entry missing: %q", out)
	}
}

func TestNewWithWriterRejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewWithWriter(Config{Level: "chatty"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := NewWithWriter(Config{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected format error")
	}
	if _, err := NewWithWriter(Config{}, nil); err == nil {
		t.Fatal("expected writer error")
	}
}

func TestOrNopNeverReturnsNil(t *testing.T) {
	t.Parallel()

	if OrNop(nil) == nil {
		t.Fatal("expected nop logger")
	}
}
