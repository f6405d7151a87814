package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chat-explorer/internal"
)

// JSONLExporter exports conversations in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a conversation to JSONL format
func (e *JSONLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range conv.Messages {
		obj := map[string]interface{}{
			"conversation_id": conv.ID,
			"id":              msg.ID,
			"role":            msg.Role,
			"text":            msg.Text,
		}
		if msg.CreateTime != nil {
			obj["create_time"] = *msg.CreateTime
		}
		if msg.Meta.ModelSlug != "" {
			obj["model"] = msg.Meta.ModelSlug
		}
		if len(msg.Media) > 0 {
			media := make([]map[string]interface{}, 0, len(msg.Media))
			for _, m := range msg.Media {
				media = append(media, map[string]interface{}{
					"kind":     m.Kind,
					"src":      m.Src,
					"resolved": m.Resolved,
				})
			}
			obj["media"] = media
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
