package internal

import "encoding/json"

// NewTestNode creates a node whose message carries plain text content. An empty
// role creates a node without a message.
func NewTestNode(id, parent, role, text string) *RawNode {
	node := &RawNode{ID: id}
	if parent != "" {
		p := parent
		node.Parent = &p
	}
	if role == "" {
		return node
	}
	part, _ := json.Marshal(text)
	node.Message = &RawMessage{
		ID:     LooseString(id),
		Author: RawAuthor{Role: role},
		Content: RawContent{
			ContentType: "text",
			Parts:       []json.RawMessage{part},
		},
		Metadata: map[string]any{},
	}
	return node
}

// NewTestMultimodalNode creates a node whose message holds the given parts,
// each marshalled to JSON.
func NewTestMultimodalNode(id, parent, role string, parts ...any) *RawNode {
	node := NewTestNode(id, parent, role, "")
	raw := make([]json.RawMessage, 0, len(parts))
	for _, p := range parts {
		b, _ := json.Marshal(p)
		raw = append(raw, b)
	}
	node.Message.Content = RawContent{ContentType: "multimodal_text", Parts: raw}
	return node
}

// NewTestConversation links nodes into a conversation whose current node is
// the last node given.
func NewTestConversation(id, title string, nodes ...*RawNode) RawConversation {
	conv := RawConversation{
		ConversationID: LooseString(id),
		Title:          LooseString(title),
		Mapping:        make(map[string]*RawNode, len(nodes)),
	}
	for _, n := range nodes {
		conv.Mapping[n.ID] = n
		if n.Parent != nil {
			if parent, ok := conv.Mapping[*n.Parent]; ok {
				parent.Children = append(parent.Children, n.ID)
			}
		}
	}
	if len(nodes) > 0 {
		conv.CurrentNode = LooseString(nodes[len(nodes)-1].ID)
	}
	return conv
}

// CreateTestConversation returns a normalized two-message conversation
func CreateTestConversation(id string) *Conversation {
	created := 1700000000.0
	updated := 1700000100.0
	mime := "image/png"
	return &Conversation{
		ID:         id,
		Title:      "Test Conversation",
		CreateTime: &created,
		UpdateTime: &updated,
		Messages: []Message{
			{
				ID:         "m1",
				Role:       "user",
				CreateTime: &created,
				Text:       "Hello, **how** are you?",
				HasImage:   true,
				Media: []MediaItem{{
					Kind:     MediaImage,
					Src:      "user-abc/file-img1.png",
					Mime:     &mime,
					Alt:      "image img1",
					Pointer:  &ParsedPointer{Scheme: "file-service", ID: "img1", RawPrefix: "file-img1"},
					Resolved: true,
				}},
				Meta: MessageMeta{NodeID: "m1", ParentID: "root", ContentType: "multimodal_text", CreatedTime: &created},
			},
			{
				ID:         "m2",
				Role:       "assistant",
				CreateTime: &updated,
				Text:       "I'm doing well, thank you!",
				Media:      []MediaItem{},
				Meta:       MessageMeta{NodeID: "m2", ParentID: "m1", ContentType: "text", CreatedTime: &updated, ModelSlug: "gpt-5"},
			},
		},
	}
}
