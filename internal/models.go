package internal

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RawConversation is one record of a conversations.json export
type RawConversation struct {
	ConversationID LooseString         `json:"conversation_id"`
	Title          LooseString         `json:"title"`
	CreateTime     Epoch               `json:"create_time"`
	UpdateTime     Epoch               `json:"update_time"`
	CurrentNode    LooseString         `json:"current_node"`
	Mapping        map[string]*RawNode `json:"mapping"`
}

// RawNode is a node of a conversation's edit tree. The root node carries no message.
type RawNode struct {
	ID       string      `json:"id"`
	Parent   *string     `json:"parent"`
	Children []string    `json:"children,omitempty"`
	Message  *RawMessage `json:"message"`
}

// RawMessage is the message attached to a node
type RawMessage struct {
	ID         LooseString    `json:"id"`
	Author     RawAuthor      `json:"author"`
	CreateTime Epoch          `json:"create_time"`
	UpdateTime Epoch          `json:"update_time"`
	Content    RawContent     `json:"content"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Status     string         `json:"status,omitempty"`
}

// RawAuthor identifies who produced a message
type RawAuthor struct {
	Role string `json:"role"`
}

// RawContent holds the undecoded parts of a message; ContentType discriminates them.
type RawContent struct {
	ContentType string            `json:"content_type"`
	Parts       []json.RawMessage `json:"parts,omitempty"`
}

type rawConversationFields struct {
	ConversationID LooseString     `json:"conversation_id"`
	Title          LooseString     `json:"title"`
	CreateTime     Epoch           `json:"create_time"`
	UpdateTime     Epoch           `json:"update_time"`
	CurrentNode    LooseString     `json:"current_node"`
	Mapping        json.RawMessage `json:"mapping"`
}

// UnmarshalJSON decodes the record's scalar fields first and the mapping node by
// node. A mapping that is not an object leaves Mapping nil; a node that does not
// decode is left out. Only a record that is not an object fails.
func (c *RawConversation) UnmarshalJSON(b []byte) error {
	var f rawConversationFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*c = RawConversation{
		ConversationID: f.ConversationID,
		Title:          f.Title,
		CreateTime:     f.CreateTime,
		UpdateTime:     f.UpdateTime,
		CurrentNode:    f.CurrentNode,
	}

	var nodes map[string]json.RawMessage
	if !isJSONObject(f.Mapping) || json.Unmarshal(f.Mapping, &nodes) != nil {
		return nil
	}
	c.Mapping = make(map[string]*RawNode, len(nodes))
	for key, raw := range nodes {
		if !isJSONObject(raw) {
			continue
		}
		var node RawNode
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.ID == "" {
			node.ID = key
		}
		c.Mapping[key] = &node
	}
	return nil
}

type rawNodeFields struct {
	ID       LooseString     `json:"id"`
	Parent   json.RawMessage `json:"parent"`
	Children json.RawMessage `json:"children"`
	Message  json.RawMessage `json:"message"`
}

// UnmarshalJSON tolerates odd parent, children and message shapes. A numeric
// parent is kept as its text; any other non-string parent counts as none.
func (n *RawNode) UnmarshalJSON(b []byte) error {
	var f rawNodeFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = RawNode{ID: f.ID.String()}

	var parent LooseString
	if len(f.Parent) > 0 && json.Unmarshal(f.Parent, &parent) == nil && parent != "" {
		p := parent.String()
		n.Parent = &p
	}

	var children []LooseString
	if json.Unmarshal(f.Children, &children) == nil {
		for _, child := range children {
			if child != "" {
				n.Children = append(n.Children, child.String())
			}
		}
	}

	if isJSONObject(f.Message) {
		var msg RawMessage
		if json.Unmarshal(f.Message, &msg) == nil {
			n.Message = &msg
		}
	}
	return nil
}

type rawMessageFields struct {
	ID         LooseString     `json:"id"`
	Author     json.RawMessage `json:"author"`
	CreateTime Epoch           `json:"create_time"`
	UpdateTime Epoch           `json:"update_time"`
	Content    json.RawMessage `json:"content"`
	Metadata   json.RawMessage `json:"metadata"`
	Status     LooseString     `json:"status"`
}

// UnmarshalJSON decodes each field on its own. Author, content or metadata of the
// wrong shape are left empty rather than failing the message.
func (m *RawMessage) UnmarshalJSON(b []byte) error {
	var f rawMessageFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = RawMessage{
		ID:         f.ID,
		CreateTime: f.CreateTime,
		UpdateTime: f.UpdateTime,
		Status:     f.Status.String(),
	}
	if isJSONObject(f.Author) {
		var author struct {
			Role LooseString `json:"role"`
		}
		if json.Unmarshal(f.Author, &author) == nil {
			m.Author.Role = author.Role.String()
		}
	}
	if isJSONObject(f.Content) {
		_ = json.Unmarshal(f.Content, &m.Content)
	}
	if isJSONObject(f.Metadata) {
		var md map[string]any
		if json.Unmarshal(f.Metadata, &md) == nil {
			m.Metadata = md
		}
	}
	return nil
}

// UnmarshalJSON keeps parts only when they form an array
func (c *RawContent) UnmarshalJSON(b []byte) error {
	var f struct {
		ContentType LooseString     `json:"content_type"`
		Parts       json.RawMessage `json:"parts"`
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*c = RawContent{ContentType: f.ContentType.String()}
	var parts []json.RawMessage
	if json.Unmarshal(f.Parts, &parts) == nil {
		c.Parts = parts
	}
	return nil
}

func isJSONObject(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// LooseString accepts a JSON string or number. null and any other shape decode to "".
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*s = LooseString(b)
	default:
		*s = ""
	}
	return nil
}

// String returns the plain string value
func (s LooseString) String() string {
	return string(s)
}

// Epoch is a lenient timestamp in seconds since the Unix epoch.
// Numbers and numeric strings are accepted; anything else leaves it invalid.
type Epoch struct {
	Seconds float64
	Valid   bool
}

func (e *Epoch) UnmarshalJSON(b []byte) error {
	*e = Epoch{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return nil
		}
		raw = strings.TrimSpace(v)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*e = Epoch{Seconds: n, Valid: true}
	return nil
}

func (e Epoch) MarshalJSON() ([]byte, error) {
	if !e.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(e.Seconds)
}

// Ptr returns the timestamp as a nullable number
func (e Epoch) Ptr() *float64 {
	if !e.Valid {
		return nil
	}
	v := e.Seconds
	return &v
}

// EpochOf builds a valid Epoch
func EpochOf(seconds float64) Epoch {
	return Epoch{Seconds: seconds, Valid: true}
}

// EpochTime converts a nullable epoch-seconds value to a time.Time
func EpochTime(seconds *float64) time.Time {
	if seconds == nil {
		return time.Time{}
	}
	whole := int64(*seconds)
	frac := *seconds - float64(whole)
	return time.Unix(whole, int64(frac*float64(time.Second)))
}
