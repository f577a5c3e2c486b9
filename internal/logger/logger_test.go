package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogIncludesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "card-arbitrage", nil)

	log.Info(context.Background(), "scan complete", "listings", 12)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["service"] != "card-arbitrage" {
		t.Errorf("service = %v, want card-arbitrage", record["service"])
	}
	if record["msg"] != "scan complete" {
		t.Errorf("msg = %v, want scan complete", record["msg"])
	}
	if record["listings"] != float64(12) {
		t.Errorf("listings = %v, want 12", record["listings"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "test", nil)

	log.Debug(context.Background(), "noise")
	log.Info(context.Background(), "noise")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got %q", buf.String())
	}

	log.Warn(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestTraceIDHook(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "test", func(ctx context.Context) string {
		return "abc123"
	})

	log.Info(context.Background(), "with trace")

	if !strings.Contains(buf.String(), `"trace_id":"abc123"`) {
		t.Errorf("trace_id missing from record: %q", buf.String())
	}
}

func TestWithAttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "test", nil)

	log.With("provider", "ebay").Info(context.Background(), "fetch done")

	if !strings.Contains(buf.String(), `"provider":"ebay"`) {
		t.Errorf("attached attribute missing: %q", buf.String())
	}
}
