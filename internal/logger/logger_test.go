package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("component", "ledger").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["message"] != "hello" {
		t.Errorf("message=%v want=hello", entry["message"])
	}
	if entry["component"] != "ledger" {
		t.Errorf("component=%v want=ledger", entry["component"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing time field")
	}
}

func TestWithLevel(t *testing.T) {
	var buf bytes.Buffer
	log := WithLevel(NewWithWriter(&buf), "error")

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("info log should be filtered at error level, got %q", buf.String())
	}

	log.Error().Msg("kept")
	if buf.Len() == 0 {
		t.Error("error log should pass at error level")
	}

	if got := WithLevel(NewWithWriter(&buf), "nonsense").GetLevel(); got != zerolog.TraceLevel {
		t.Errorf("unknown level should leave logger unchanged, got %v", got)
	}
}
