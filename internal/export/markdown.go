package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-explorer/internal"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct{}

// Export exports a conversation to Markdown format
func (e *MarkdownExporter) Export(conv *internal.Conversation, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", conv.Title)

	_, _ = fmt.Fprintf(w, "**Conversation:** %s  \n", conv.ID)
	if created := internal.FormatEpoch(conv.CreateTime); created != "" {
		_, _ = fmt.Fprintf(w, "**Created:** %s  \n", created)
	}
	if updated := internal.FormatEpoch(conv.UpdateTime); updated != "" {
		_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", updated)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(conv.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range conv.Messages {
		heading := msg.Role
		if msg.Meta.ModelSlug != "" {
			heading += " · " + msg.Meta.ModelSlug
		}
		timestamp := ""
		if ts := internal.FormatEpoch(msg.CreateTime); ts != "" {
			timestamp = fmt.Sprintf(" (%s)", ts)
		}
		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n", heading, timestamp)

		if text := strings.TrimSpace(msg.Text); text != "" {
			_, _ = fmt.Fprintf(w, "%s\n\n", text)
		}
		for _, m := range msg.Media {
			_, _ = fmt.Fprintf(w, "%s\n\n", mediaMarkdown(m))
		}

		if i < len(conv.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// mediaMarkdown links resolved attachments and labels unresolved ones
func mediaMarkdown(m internal.MediaItem) string {
	if !m.Renderable() {
		return fmt.Sprintf("> _%s attachment not found: `%s`_", m.Kind, m.Src)
	}
	src := strings.ReplaceAll(m.Src, " ", "%20")
	if m.Kind == internal.MediaImage {
		return fmt.Sprintf("![%s](%s)", m.Alt, src)
	}
	return fmt.Sprintf("[%s](%s)", m.Alt, src)
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
