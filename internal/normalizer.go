package internal

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	untitled      = "Untitled"
	titleFromText = 80
	roleUnknown   = "unknown"
	roleSystem    = "system"
	roleAssistant = "assistant"
)

// Normalizer turns raw export records into normalized conversations, resolving
// attachments against an AssetIndex built once per file list.
type Normalizer struct {
	index    *AssetIndex
	maxSteps int
}

// NormalizerOption configures a Normalizer
type NormalizerOption func(*Normalizer)

// WithMaxWalkSteps overrides the active-path iteration ceiling
func WithMaxWalkSteps(steps int) NormalizerOption {
	return func(n *Normalizer) {
		if steps > 0 {
			n.maxSteps = steps
		}
	}
}

// NewNormalizer creates a Normalizer over the given index (nil means no files)
func NewNormalizer(index *AssetIndex, opts ...NormalizerOption) *Normalizer {
	if index == nil {
		index = BuildAssetIndex(nil)
	}
	n := &Normalizer{index: index, maxSteps: DefaultMaxWalkSteps}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeResult is the output of NormalizeWithWarnings
type NormalizeResult struct {
	Normalized []Conversation `json:"normalized"`
	Stats      Stats          `json:"stats"`
}

// Normalize builds the asset index from files and normalizes every record that has an id
func Normalize(raw []RawConversation, files []FileRef, opts ...NormalizerOption) []Conversation {
	return NormalizeWithWarnings(raw, files, opts...).Normalized
}

// NormalizeWithWarnings is Normalize plus a {total, loaded, skipped} summary
func NormalizeWithWarnings(raw []RawConversation, files []FileRef, opts ...NormalizerOption) NormalizeResult {
	return NewNormalizer(BuildAssetIndex(files), opts...).NormalizeAll(raw)
}

// NormalizeAll normalizes every record, dropping those without a conversation_id
func (n *Normalizer) NormalizeAll(raw []RawConversation) NormalizeResult {
	out := make([]Conversation, 0, len(raw))
	for i := range raw {
		conv, ok := n.NormalizeConversation(&raw[i])
		if !ok {
			continue
		}
		out = append(out, *conv)
	}

	stats := Stats{Total: len(raw), Loaded: len(out)}
	stats.Skipped = stats.Total - stats.Loaded
	conversationsLoaded.Add(float64(stats.Loaded))
	conversationsSkipped.Add(float64(stats.Skipped))
	if stats.Skipped > 0 {
		log.Warn().Int("skipped", stats.Skipped).Int("total", stats.Total).Msg("records without conversation_id skipped")
	}

	return NormalizeResult{Normalized: out, Stats: stats}
}

// NormalizeConversation normalizes one record. ok is false only when the record
// has no conversation_id; malformed trees yield an empty message list instead.
func (n *Normalizer) NormalizeConversation(raw *RawConversation) (conv *Conversation, ok bool) {
	if raw == nil || raw.ConversationID == "" {
		return nil, false
	}

	id := raw.ConversationID.String()
	messages := n.reconstructMessages(raw)
	return &Conversation{
		ID:         id,
		Title:      normalizeTitle(raw.Title.String(), id, messages),
		CreateTime: raw.CreateTime.Ptr(),
		UpdateTime: raw.UpdateTime.Ptr(),
		Messages:   messages,
	}, true
}

func (n *Normalizer) reconstructMessages(raw *RawConversation) []Message {
	convID := raw.ConversationID.String()
	messages := make([]Message, 0)

	for _, nodeID := range n.activePath(raw) {
		node := raw.Mapping[nodeID]
		msg := node.Message
		if msg == nil || isHidden(msg) {
			continue
		}

		body := n.extractContent(msg.Content, convID)
		if strings.TrimSpace(body.text) == "" && len(body.media) == 0 {
			continue
		}

		role := msg.Author.Role
		if role == "" {
			role = roleUnknown
		}
		id := msg.ID.String()
		if id == "" {
			id = node.ID
		}

		messages = append(messages, Message{
			ID:         id,
			Role:       role,
			CreateTime: msg.CreateTime.Ptr(),
			UpdateTime: msg.UpdateTime.Ptr(),
			Text:       body.text,
			HasImage:   body.hasImage,
			Media:      body.media,
			Meta:       buildMeta(node, msg, role),
		})
	}
	return messages
}

type extracted struct {
	text     string
	hasImage bool
	media    []MediaItem
}

func (e *extracted) appendText(s string) {
	if e.text != "" {
		e.text += " "
	}
	e.text += s
}

func (n *Normalizer) extractContent(content RawContent, convID string) extracted {
	var out extracted
	switch content.Kind() {
	case ContentText:
		out.text = strings.TrimSpace(strings.Join(content.TextParts(), " "))
	case ContentMultimodalText:
		for _, part := range content.DecodedParts() {
			n.extractPart(&out, part, convID)
		}
		out.text = strings.TrimSpace(out.text)
	case ContentUnknown:
	}
	if out.media == nil {
		out.media = []MediaItem{}
	}
	return out
}

func (n *Normalizer) extractPart(out *extracted, part Part, convID string) {
	switch p := part.(type) {
	case PlainStringPart:
		out.appendText(p.Text)
	case AssetPointerPart:
		n.addMedia(out, &p, convID)
	case CompositeAudioVideoPart:
		n.addMedia(out, p.Video, convID)
		n.addMedia(out, p.Audio, convID)
	case TranscriptionPart:
		if strings.TrimSpace(p.Text) == "" {
			return
		}
		out.appendText(p.Text)
		n.addMedia(out, p.Audio, convID)
	case UnknownPart:
	}
}

func (n *Normalizer) addMedia(out *extracted, part *AssetPointerPart, convID string) {
	if part == nil {
		return
	}
	item, ok := n.resolveMedia(*part, convID)
	if !ok {
		return
	}
	if item.Kind == MediaImage {
		out.hasImage = true
	}
	out.media = append(out.media, item)
}

// resolveMedia turns a pointer part into a MediaItem; parts without a string
// pointer produce nothing.
func (n *Normalizer) resolveMedia(part AssetPointerPart, convID string) (MediaItem, bool) {
	pointer := ParseAssetPointer(part.Pointer)
	if pointer == nil {
		return MediaItem{}, false
	}
	raw, _ := part.Pointer.(string)

	item := MediaItem{
		Kind:    part.Kind,
		Src:     raw,
		Alt:     altText(part.Kind, pointer),
		Pointer: pointer,
	}

	paths, tier := n.index.ResolveWithTier(*pointer, ResolveContext{ConversationID: convID, Kind: part.Kind})
	pointerResolutions.WithLabelValues(tier).Inc()
	if len(paths) > 0 {
		item.Src = paths[0]
		item.Resolved = true
	} else {
		log.Debug().Str("conversation", convID).Str("pointer", raw).Msg("asset pointer unresolved")
	}

	mime := part.Mime
	if mime == "" && item.Resolved {
		mime = MimeForPath(item.Src)
	}
	if mime != "" {
		item.Mime = &mime
	}
	return item, true
}

func altText(kind MediaKind, p *ParsedPointer) string {
	if kind == MediaImage {
		return "image " + p.ID
	}
	return string(kind) + " attachment"
}

func buildMeta(node *RawNode, msg *RawMessage, role string) MessageMeta {
	meta := MessageMeta{
		NodeID:      node.ID,
		ContentType: msg.Content.ContentType,
		CreatedTime: msg.CreateTime.Ptr(),
		Status:      msg.Status,
	}
	if meta.NodeID == "" {
		meta.NodeID = msg.ID.String()
	}
	if node.Parent != nil {
		meta.ParentID = *node.Parent
	}
	if role == roleAssistant {
		meta.ModelSlug = firstString(msg.Metadata, "model_slug", "default_model_slug")
	}

	md := msg.Metadata
	if md == nil {
		return meta
	}
	meta.SelectedSources = nonEmptySlice(md["selected_sources"])
	meta.PromptExpansionPredictions = nonEmptySlice(md["prompt_expansion_predictions"])
	meta.SafeURLs = nonEmptySlice(md["safe_urls"])
	if b, ok := md["is_user_system_message"].(bool); ok {
		meta.IsUserSystemMessage = &b
	}
	if m, ok := md["user_context_message_data"].(map[string]any); ok && len(m) > 0 {
		meta.UserContextMessageData = m
	}
	return meta
}

func firstString(md map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := md[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func nonEmptySlice(v any) []any {
	s, ok := v.([]any)
	if !ok || len(s) == 0 {
		return nil
	}
	return s
}

// normalizeTitle applies the title chain: explicit title, conversation id,
// leading text of the first non-system message, then "Untitled".
func normalizeTitle(title, id string, messages []Message) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if id != "" {
		return id
	}
	for _, m := range messages {
		if m.Role == roleSystem || strings.TrimSpace(m.Text) == "" {
			continue
		}
		return truncateRunes(m.Text, titleFromText)
	}
	return untitled
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
