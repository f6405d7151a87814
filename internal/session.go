package internal

// Conversation is a normalized conversation: its active path, oldest message first
type Conversation struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	CreateTime *float64  `json:"create_time" yaml:"create_time"`
	UpdateTime *float64  `json:"update_time" yaml:"update_time"`
	Messages   []Message `json:"messages" yaml:"messages"`
}

// Message is one visible turn of a conversation
type Message struct {
	ID         string      `json:"id" yaml:"id"`
	Role       string      `json:"role" yaml:"role"`
	CreateTime *float64    `json:"create_time" yaml:"create_time"`
	UpdateTime *float64    `json:"update_time" yaml:"update_time"`
	Text       string      `json:"text" yaml:"text"`
	HasImage   bool        `json:"hasImage" yaml:"has_image"`
	Media      []MediaItem `json:"media" yaml:"media,omitempty"`
	Meta       MessageMeta `json:"meta" yaml:"meta"`
}

// MessageMeta carries provenance for tooltips. Optional fields are omitted when empty.
type MessageMeta struct {
	NodeID                     string         `json:"nodeId" yaml:"node_id"`
	ParentID                   string         `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
	ContentType                string         `json:"contentType" yaml:"content_type"`
	CreatedTime                *float64       `json:"createdTime,omitempty" yaml:"created_time,omitempty"`
	ModelSlug                  string         `json:"modelSlug,omitempty" yaml:"model_slug,omitempty"`
	Status                     string         `json:"status,omitempty" yaml:"status,omitempty"`
	SelectedSources            []any          `json:"selected_sources,omitempty" yaml:"selected_sources,omitempty"`
	PromptExpansionPredictions []any          `json:"prompt_expansion_predictions,omitempty" yaml:"prompt_expansion_predictions,omitempty"`
	SafeURLs                   []any          `json:"safe_urls,omitempty" yaml:"safe_urls,omitempty"`
	IsUserSystemMessage        *bool          `json:"is_user_system_message,omitempty" yaml:"is_user_system_message,omitempty"`
	UserContextMessageData     map[string]any `json:"user_context_message_data,omitempty" yaml:"user_context_message_data,omitempty"`
}

// MediaKind is the media class of an attachment
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// MediaItem is an attachment of a message. When Resolved is false, Src holds the
// raw pointer string and must not be rendered.
type MediaItem struct {
	Kind     MediaKind      `json:"kind" yaml:"kind"`
	Src      string         `json:"src" yaml:"src"`
	Mime     *string        `json:"mime" yaml:"mime"`
	Alt      string         `json:"alt" yaml:"alt"`
	Pointer  *ParsedPointer `json:"pointer" yaml:"pointer"`
	Resolved bool           `json:"resolved" yaml:"resolved"`
}

// ParsedPointer is a decoded asset pointer such as file-service://file-ABC123
type ParsedPointer struct {
	Scheme    string `json:"scheme" yaml:"scheme"`
	ID        string `json:"id" yaml:"id"`
	RawPrefix string `json:"rawPrefix" yaml:"raw_prefix"`
}

// FileRef is a candidate attachment file under a dataset root
type FileRef struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Stats summarizes a normalization run
type Stats struct {
	Total   int `json:"total" yaml:"total"`
	Loaded  int `json:"loaded" yaml:"loaded"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// LastActivity returns update_time, falling back to create_time, then 0
func (c *Conversation) LastActivity() float64 {
	if c.UpdateTime != nil {
		return *c.UpdateTime
	}
	if c.CreateTime != nil {
		return *c.CreateTime
	}
	return 0
}
