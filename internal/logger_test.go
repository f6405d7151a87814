package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreLogging(t *testing.T) {
	t.Helper()
	logger := log.Logger
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetupLoggingTo_JSON(t *testing.T) {
	restoreLogging(t)
	var buf bytes.Buffer

	SetupLoggingTo(&buf, "warn", "json")
	log.Info().Msg("dropped")
	log.Warn().Str("k", "v").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["message"] != "kept" || entry["k"] != "v" || entry["level"] != "warn" {
		t.Errorf("entry = %v", entry)
	}
}

func TestSetupLoggingTo_Text(t *testing.T) {
	restoreLogging(t)
	var buf bytes.Buffer

	SetupLoggingTo(&buf, "debug", "text")
	log.Debug().Msg("hello console")

	if !strings.Contains(buf.String(), "hello console") {
		t.Errorf("output = %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Error("text format should not emit JSON")
	}
}

func TestSetVerbose(t *testing.T) {
	restoreLogging(t)

	SetVerbose(true)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("SetVerbose(true) level = %v, want debug", zerolog.GlobalLevel())
	}
	SetVerbose(false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("SetVerbose(false) level = %v, want info", zerolog.GlobalLevel())
	}
}
