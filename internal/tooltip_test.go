package internal

import (
	"encoding/json"
	"testing"
)

func TestBuildTooltipSummary(t *testing.T) {
	conv := CreateTestConversation("c1")

	user := BuildTooltipSummary(conv.Messages[0])
	if user.Role != "user" || user.ID != "m1" || user.ParentID != "root" || user.ModelSlug != "" {
		t.Errorf("user summary = %+v", user)
	}

	assistant := BuildTooltipSummary(conv.Messages[1])
	if assistant.ModelSlug != "gpt-5" {
		t.Errorf("ModelSlug = %q, want gpt-5", assistant.ModelSlug)
	}

	// a non-assistant never shows a model, even if meta carries one
	m := conv.Messages[1]
	m.Role = "tool"
	if got := BuildTooltipSummary(m); got.ModelSlug != "" {
		t.Errorf("tool ModelSlug = %q", got.ModelSlug)
	}
}

func TestBuildTooltipSummary_Fallbacks(t *testing.T) {
	created := 5.0
	got := BuildTooltipSummary(Message{CreateTime: &created, Meta: MessageMeta{NodeID: "node-1", ContentType: "text"}})
	if got.Role != "unknown" || got.ID != "node-1" || got.CreatedTime == nil || *got.CreatedTime != 5 {
		t.Errorf("summary = %+v", got)
	}

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"modelSlug", "parentId", "safe_urls", "status"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("empty %s should be omitted", key)
		}
	}
}
