package internal

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRawContent_Kind(t *testing.T) {
	tests := map[string]ContentKind{
		"text":            ContentText,
		"multimodal_text": ContentMultimodalText,
		"code":            ContentUnknown,
		"":                ContentUnknown,
	}
	for ct, want := range tests {
		if got := (RawContent{ContentType: ct}).Kind(); got != want {
			t.Errorf("Kind(%q) = %v, want %v", ct, got, want)
		}
	}
}

func TestDecodePart(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Part
	}{
		{name: "string", raw: `"hi"`, want: PlainStringPart{Text: "hi"}},
		{name: "number", raw: `5`, want: UnknownPart{}},
		{name: "null", raw: `null`, want: UnknownPart{}},
		{
			name: "image",
			raw:  `{"content_type":"image_asset_pointer","asset_pointer":"file-service://file-1"}`,
			want: AssetPointerPart{ContentType: "image_asset_pointer", Kind: MediaImage, Pointer: "file-service://file-1"},
		},
		{
			name: "input audio with format",
			raw:  `{"content_type":"input_audio","asset_pointer":"sediment://file_2","format":"wav"}`,
			want: AssetPointerPart{ContentType: "input_audio", Kind: MediaAudio, Pointer: "sediment://file_2", Mime: "audio/wav"},
		},
		{
			name: "video with mime type",
			raw:  `{"content_type":"video_asset_pointer","asset_pointer":"sediment://file_3","mime_type":"video/webm","format":"mp4"}`,
			want: AssetPointerPart{ContentType: "video_asset_pointer", Kind: MediaVideo, Pointer: "sediment://file_3", Mime: "video/webm"},
		},
		{
			name: "composite with video only",
			raw:  `{"content_type":"real_time_user_audio_video_asset_pointer","video_container_asset_pointer":{"content_type":"video_container_asset_pointer","asset_pointer":"sediment://v"}}`,
			want: CompositeAudioVideoPart{
				Video: &AssetPointerPart{ContentType: "video_container_asset_pointer", Kind: MediaVideo, Pointer: "sediment://v"},
			},
		},
		{
			name: "transcription with recording",
			raw:  `{"content_type":"audio_transcription","text":"said","asset_pointer":"sediment://a"}`,
			want: TranscriptionPart{
				Text:  "said",
				Audio: &AssetPointerPart{ContentType: "audio_transcription", Kind: MediaAudio, Pointer: "sediment://a"},
			},
		},
		{name: "unknown", raw: `{"content_type":"tether_browsing_display"}`, want: UnknownPart{ContentType: "tether_browsing_display"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodePart(json.RawMessage(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodePart() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRawContent_TextParts(t *testing.T) {
	c := RawContent{ContentType: "text", Parts: []json.RawMessage{
		json.RawMessage(`"a"`),
		json.RawMessage(`{"content_type":"image_asset_pointer"}`),
		json.RawMessage(`"b"`),
	}}
	if got := c.TextParts(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("TextParts() = %v", got)
	}
}
