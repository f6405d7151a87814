package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/chat-explorer/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	conv := internal.CreateTestConversation("c1")

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(conv, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first, second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 is not JSON: %v", err)
	}

	if first["role"] != "user" || first["conversation_id"] != "c1" {
		t.Errorf("first line = %v", first)
	}
	media, ok := first["media"].([]interface{})
	if !ok || len(media) != 1 {
		t.Errorf("first line media = %v", first["media"])
	}
	if second["model"] != "gpt-5" {
		t.Errorf("second line model = %v", second["model"])
	}
	if _, ok := second["media"]; ok {
		t.Error("message without media should omit the media key")
	}
}

func TestJSONLExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(&internal.Conversation{ID: "x"}, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty conversation wrote %q", buf.String())
	}
}
