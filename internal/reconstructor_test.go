package internal

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestWalkToRoot(t *testing.T) {
	mapping := map[string]*RawNode{
		"root": {ID: "root"},
		"a":    {ID: "a", Parent: strPtr("root")},
		"b":    {ID: "b", Parent: strPtr("a")},
		"c":    {ID: "c", Parent: strPtr("b")},
		"alt":  {ID: "alt", Parent: strPtr("a")},
		"orph": {ID: "orph", Parent: strPtr("gone")},
	}

	tests := []struct {
		name          string
		start         string
		maxSteps      int
		want          []string
		wantTruncated bool
	}{
		{name: "full chain", start: "c", want: []string{"root", "a", "b", "c"}},
		{name: "sibling branch", start: "alt", want: []string{"root", "a", "alt"}},
		{name: "root only", start: "root", want: []string{"root"}},
		{name: "missing parent stops walk", start: "orph", want: []string{"orph"}},
		{name: "unknown start", start: "nope", want: nil},
		{name: "empty start", start: "", want: nil},
		{name: "ceiling", start: "c", maxSteps: 2, want: []string{"b", "c"}, wantTruncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := WalkToRoot(mapping, tt.start, tt.maxSteps)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WalkToRoot() = %v, want %v", got, tt.want)
			}
			if truncated != tt.wantTruncated {
				t.Errorf("WalkToRoot() truncated = %v, want %v", truncated, tt.wantTruncated)
			}
		})
	}
}

func TestWalkToRoot_Cycle(t *testing.T) {
	mapping := map[string]*RawNode{
		"a": {ID: "a", Parent: strPtr("b")},
		"b": {ID: "b", Parent: strPtr("a")},
	}

	ids, truncated := WalkToRoot(mapping, "a", 50)
	if !truncated {
		t.Error("WalkToRoot() on a cycle should report truncation")
	}
	if len(ids) != 50 {
		t.Errorf("WalkToRoot() visited %d nodes, want 50", len(ids))
	}

	// mapping is untouched
	if *mapping["a"].Parent != "b" || *mapping["b"].Parent != "a" {
		t.Error("WalkToRoot() modified the mapping")
	}
}

func TestNormalizeConversation_CycleIsBounded(t *testing.T) {
	a := NewTestNode("a", "b", "user", "ping")
	b := NewTestNode("b", "a", "assistant", "pong")
	conv := NewTestConversation("cyc", "Cycle", a, b)

	n := NewNormalizer(nil, WithMaxWalkSteps(100))
	got, ok := n.NormalizeConversation(&conv)
	if !ok {
		t.Fatal("NormalizeConversation() dropped a conversation with an id")
	}
	if len(got.Messages) != 100 {
		t.Errorf("len(Messages) = %d, want 100", len(got.Messages))
	}
}

func TestActivePath_Malformed(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		conv RawConversation
	}{
		{name: "nil mapping", conv: RawConversation{ConversationID: "x", CurrentNode: "a"}},
		{name: "no current node", conv: RawConversation{ConversationID: "x", Mapping: map[string]*RawNode{"a": {ID: "a"}}}},
		{name: "dangling current node", conv: RawConversation{ConversationID: "x", CurrentNode: "zz", Mapping: map[string]*RawNode{"a": {ID: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.activePath(&tt.conv); len(got) != 0 {
				t.Errorf("activePath() = %v, want empty", got)
			}
			conv, ok := n.NormalizeConversation(&tt.conv)
			if !ok {
				t.Fatal("NormalizeConversation() should keep records that have an id")
			}
			if conv.Messages == nil || len(conv.Messages) != 0 {
				t.Errorf("Messages = %#v, want empty non-nil slice", conv.Messages)
			}
		})
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		msg  *RawMessage
		want bool
	}{
		{name: "nil", msg: nil, want: false},
		{name: "no metadata", msg: &RawMessage{}, want: false},
		{name: "hidden", msg: &RawMessage{Metadata: map[string]any{"is_visually_hidden_from_conversation": true}}, want: true},
		{name: "explicitly visible", msg: &RawMessage{Metadata: map[string]any{"is_visually_hidden_from_conversation": false}}, want: false},
		{name: "non-bool flag", msg: &RawMessage{Metadata: map[string]any{"is_visually_hidden_from_conversation": "true"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHidden(tt.msg); got != tt.want {
				t.Errorf("isHidden() = %v, want %v", got, tt.want)
			}
		})
	}
}
