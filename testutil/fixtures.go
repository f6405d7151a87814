package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleExport is a small conversations.json covering branches, hidden
// messages, image and audio/video pointers, and records without an id.
const SampleExport = `[
  {
    "conversation_id": "conv-branch",
    "title": "Branching chat",
    "create_time": 1700000000,
    "update_time": 1700000500,
    "current_node": "n4",
    "mapping": {
      "root": {"id": "root", "parent": null, "children": ["sys"], "message": null},
      "sys": {"id": "sys", "parent": "root", "children": ["n1"], "message": {
        "id": "sys", "author": {"role": "system"},
        "content": {"content_type": "text", "parts": ["hidden prompt"]},
        "metadata": {"is_visually_hidden_from_conversation": true}
      }},
      "n1": {"id": "n1", "parent": "sys", "children": ["n2", "n2b"], "message": {
        "id": "n1", "author": {"role": "user"}, "create_time": 1700000100,
        "content": {"content_type": "multimodal_text", "parts": [
          "what is in this picture?",
          {"content_type": "image_asset_pointer", "asset_pointer": "file-service://file-PIC123"}
        ]},
        "metadata": {}
      }},
      "n2b": {"id": "n2b", "parent": "n1", "children": [], "message": {
        "id": "n2b", "author": {"role": "assistant"}, "create_time": 1700000150,
        "content": {"content_type": "text", "parts": ["abandoned branch"]},
        "metadata": {"model_slug": "gpt-4o"}
      }},
      "n2": {"id": "n2", "parent": "n1", "children": ["n3"], "message": {
        "id": "n2", "author": {"role": "assistant"}, "create_time": 1700000200,
        "status": "finished_successfully",
        "content": {"content_type": "text", "parts": ["A **cat** on a sofa."]},
        "metadata": {"model_slug": "gpt-5", "safe_urls": ["https://example.com/cat"]}
      }},
      "n3": {"id": "n3", "parent": "n2", "children": ["n4"], "message": {
        "id": "n3", "author": {"role": "user"}, "create_time": 1700000300,
        "content": {"content_type": "multimodal_text", "parts": [
          {"content_type": "real_time_user_audio_video_asset_pointer",
           "audio_asset_pointer": {"content_type": "audio_asset_pointer", "asset_pointer": "sediment://file_AUD9"},
           "video_container_asset_pointer": null},
          {"content_type": "audio_transcription", "text": "tell me more"}
        ]},
        "metadata": {}
      }},
      "n4": {"id": "n4", "parent": "n3", "children": [], "message": {
        "id": "n4", "author": {"role": "assistant"}, "create_time": 1700000400,
        "content": {"content_type": "text", "parts": ["It looks relaxed."]},
        "metadata": {"model_slug": "gpt-5"}
      }}
    }
  },
  {
    "conversation_id": "conv-plain",
    "title": "",
    "create_time": 1600000000,
    "update_time": 1600000000,
    "current_node": "p1",
    "mapping": {"p1": {"id": "p1", "parent": null, "message": {
      "id": "p1", "author": {"role": "user"},
      "content": {"content_type": "text", "parts": ["hello there"]}
    }}}
  },
  {"title": "no id"}
]`

// SampleConversationCount is the number of records in SampleExport with an id
const SampleConversationCount = 2

// CreateDatasetFixture writes an export folder named id under dataDir holding
// SampleExport and the attachments it points at. It returns the folder path.
func CreateDatasetFixture(t *testing.T, dataDir, id string) string {
	t.Helper()
	dir := filepath.Join(dataDir, id)
	WriteFile(t, dir, "conversations.json", SampleExport)
	WriteFile(t, dir, "user-abc/file-PIC123-photo.png", "png")
	WriteFile(t, dir, "conv-branch/audio/file_AUD9-0001.wav", "wav")
	WriteFile(t, dir, "notes/readme.txt", "not an attachment")
	return dir
}

// CreateMockDataDir creates a data directory with two datasets, "alpha" and
// "beta", plus a hidden folder that discovery ignores.
func CreateMockDataDir(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	CreateDatasetFixture(t, dataDir, "alpha")
	CreateDatasetFixture(t, dataDir, "beta")
	WriteFile(t, filepath.Join(dataDir, ".trash"), "conversations.json", "[]")
	return dataDir
}

// WriteFile writes content to rel under root, creating parent folders
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", rel, err)
	}
}
