package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLogNoopForNilLoggerAndEmptyPath(t *testing.T) {
	var nilLogger *Logger
	if err := nilLogger.Log(Event{Operation: "op"}); err != nil {
		t.Fatalf("nil logger should be noop: %v", err)
	}
	if err := New("").Log(Event{Operation: "op"}); err != nil {
		t.Fatalf("empty-path logger should be noop: %v", err)
	}
	if nilLogger.Path() != "" || nilLogger.Invocation() != "" {
		t.Fatalf("nil logger should report empty path and invocation")
	}
}

func TestLogWritesJSONLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "status", "scaffold_audit.jsonl")
	logger := New(logPath)

	first := Event{
		RunID:     1000,
		Operation: "top_level",
		Phase:     "derive",
		Status:    "ok",
		Message:   "bam basecall path set",
		Fields: map[string]string{
			"bam_basecall": "/runs/1000/BAM_basecalls_x",
		},
	}
	second := Event{
		RunID:     1000,
		Operation: "top_level",
		Phase:     "commit",
		Status:    "ok",
	}

	if err := logger.Log(first); err != nil {
		t.Fatalf("log first event: %v", err)
	}
	if err := logger.Log(second); err != nil {
		t.Fatalf("log second event: %v", err)
	}

	blob, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(blob)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var gotFirst Event
	if err := json.Unmarshal([]byte(lines[0]), &gotFirst); err != nil {
		t.Fatalf("unmarshal first event: %v", err)
	}
	if gotFirst.Operation != first.Operation || gotFirst.Phase != first.Phase || gotFirst.RunID != 1000 {
		t.Fatalf("unexpected first event: %+v", gotFirst)
	}
	if gotFirst.Fields["bam_basecall"] != first.Fields["bam_basecall"] {
		t.Fatalf("expected fields to round-trip, got %+v", gotFirst.Fields)
	}
	if _, err := time.Parse(time.RFC3339Nano, gotFirst.Timestamp); err != nil {
		t.Fatalf("timestamp should be RFC3339Nano: %v", err)
	}

	var gotSecond Event
	if err := json.Unmarshal([]byte(lines[1]), &gotSecond); err != nil {
		t.Fatalf("unmarshal second event: %v", err)
	}
	if gotSecond.Invocation != gotFirst.Invocation {
		t.Fatalf("events of one logger should share an invocation id")
	}
	if _, err := uuid.Parse(gotFirst.Invocation); err != nil {
		t.Fatalf("invocation should be a uuid: %v", err)
	}
}

func TestSeparateLoggersGetDistinctInvocations(t *testing.T) {
	a := New("x")
	b := New("x")
	if a.Invocation() == b.Invocation() {
		t.Fatalf("expected distinct invocation ids")
	}
}
