package internal

import (
	"bytes"
	"encoding/json"
)

// ContentKind classifies a message's content by its content_type
type ContentKind int

const (
	ContentUnknown ContentKind = iota
	ContentText
	ContentMultimodalText
)

// Kind maps the raw content_type onto a ContentKind
func (c RawContent) Kind() ContentKind {
	switch c.ContentType {
	case "text":
		return ContentText
	case "multimodal_text":
		return ContentMultimodalText
	default:
		return ContentUnknown
	}
}

// Part is one decoded entry of a multimodal message
type Part interface {
	isPart()
}

// PlainStringPart is a bare string entry
type PlainStringPart struct {
	Text string
}

// AssetPointerPart references an attachment (image, audio or video pointer)
type AssetPointerPart struct {
	ContentType string
	Kind        MediaKind
	Pointer     any
	Mime        string
}

// CompositeAudioVideoPart is a real-time capture carrying separate video and audio pointers
type CompositeAudioVideoPart struct {
	Video *AssetPointerPart
	Audio *AssetPointerPart
}

// TranscriptionPart is spoken text, optionally with its recording
type TranscriptionPart struct {
	Text  string
	Audio *AssetPointerPart
}

// UnknownPart is anything else; it contributes nothing
type UnknownPart struct {
	ContentType string
}

func (PlainStringPart) isPart()         {}
func (AssetPointerPart) isPart()        {}
func (CompositeAudioVideoPart) isPart() {}
func (TranscriptionPart) isPart()       {}
func (UnknownPart) isPart()             {}

// rawPart mirrors every object shape a multimodal part can take
type rawPart struct {
	ContentType                string   `json:"content_type"`
	AssetPointer               any      `json:"asset_pointer"`
	Format                     string   `json:"format"`
	MimeType                   string   `json:"mime_type"`
	Text                       string   `json:"text"`
	VideoContainerAssetPointer *rawPart `json:"video_container_asset_pointer"`
	AudioAssetPointer          *rawPart `json:"audio_asset_pointer"`
}

// DecodePart decodes one raw entry of content.parts
func DecodePart(raw json.RawMessage) Part {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return UnknownPart{}
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return UnknownPart{}
		}
		return PlainStringPart{Text: s}
	case '{':
		var rp rawPart
		if err := json.Unmarshal(trimmed, &rp); err != nil {
			return UnknownPart{}
		}
		return rp.toPart()
	default:
		return UnknownPart{}
	}
}

func (rp rawPart) toPart() Part {
	switch rp.ContentType {
	case "image_asset_pointer":
		return rp.pointerPart(MediaImage)
	case "audio_asset_pointer", "input_audio":
		return rp.pointerPart(MediaAudio)
	case "video_container_asset_pointer", "video_asset_pointer":
		return rp.pointerPart(MediaVideo)
	case "real_time_user_audio_video_asset_pointer":
		composite := CompositeAudioVideoPart{}
		if rp.VideoContainerAssetPointer != nil {
			v := rp.VideoContainerAssetPointer.pointerPart(MediaVideo)
			composite.Video = &v
		}
		if rp.AudioAssetPointer != nil {
			a := rp.AudioAssetPointer.pointerPart(MediaAudio)
			composite.Audio = &a
		}
		return composite
	case "audio_transcription":
		tp := TranscriptionPart{Text: rp.Text}
		if rp.AssetPointer != nil {
			a := rp.pointerPart(MediaAudio)
			tp.Audio = &a
		}
		return tp
	default:
		return UnknownPart{ContentType: rp.ContentType}
	}
}

func (rp rawPart) pointerPart(kind MediaKind) AssetPointerPart {
	mime := rp.MimeType
	if mime == "" && rp.Format != "" {
		mime = string(kind) + "/" + rp.Format
	}
	return AssetPointerPart{
		ContentType: rp.ContentType,
		Kind:        kind,
		Pointer:     rp.AssetPointer,
		Mime:        mime,
	}
}

// TextParts returns the string entries of a "text" content, in order
func (c RawContent) TextParts() []string {
	out := make([]string, 0, len(c.Parts))
	for _, raw := range c.Parts {
		if p, ok := DecodePart(raw).(PlainStringPart); ok {
			out = append(out, p.Text)
		}
	}
	return out
}

// DecodedParts decodes every entry of content.parts
func (c RawContent) DecodedParts() []Part {
	out := make([]Part, 0, len(c.Parts))
	for _, raw := range c.Parts {
		out = append(out, DecodePart(raw))
	}
	return out
}
