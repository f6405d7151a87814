package export

import (
	"bytes"
	"testing"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/testutil"
)

func TestJSONExporter_Export(t *testing.T) {
	conv := internal.CreateTestConversation("c1")

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(conv, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	decoded := testutil.JSONUnmarshal[internal.Conversation](t, buf.Bytes())
	if decoded.ID != "c1" || len(decoded.Messages) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Messages[1].Meta.ModelSlug != "gpt-5" {
		t.Errorf("ModelSlug = %q", decoded.Messages[1].Meta.ModelSlug)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"id\"")) {
		t.Error("output should be indented")
	}
}
