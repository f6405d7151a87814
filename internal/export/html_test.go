package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-explorer/internal"
)

func TestHTMLExporter_Export(t *testing.T) {
	conv := internal.CreateTestConversation("c1")
	conv.Messages[1].Text = "<script>alert(1)</script> fine"

	var buf bytes.Buffer
	if err := (&HTMLExporter{MediaBase: "../"}).Export(conv, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Test Conversation</title>",
		"<strong>how</strong>",
		`<img src="../user-abc/file-img1.png" alt="image img1"`,
		"gpt-5",
		"fine",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<script>alert") {
		t.Error("message HTML was not sanitized")
	}
}

func TestHTMLExporter_UnsafeAndMissingMedia(t *testing.T) {
	conv := internal.CreateTestConversation("c1")
	conv.Messages[0].Media = []internal.MediaItem{
		{Kind: internal.MediaImage, Src: "javascript:alert(1)", Resolved: true},
		{Kind: internal.MediaAudio, Src: "sediment://file_x"},
	}

	var buf bytes.Buffer
	if err := (&HTMLExporter{}).Export(conv, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "javascript:") || strings.Contains(out, "sediment://") {
		t.Error("unsafe or unresolved sources were emitted")
	}
	if strings.Count(out, "attachment not found") != 2 {
		t.Errorf("expected two missing-attachment notices:\n%s", out)
	}
}
