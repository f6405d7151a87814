package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/internal/render"
	"github.com/spf13/cobra"
)

var (
	limit     int
	showMeta  bool
	showRaw   bool
	showWidth int
	showStyle string
)

var (
	// Styles for show command
	conversationHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	conversationMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var showCmd = &cobra.Command{
	Use:   "show <dataset> <conversation-id>",
	Short: "Show the messages of a conversation",
	Long: `Display the visible thread of a conversation: the branch that was current
when the export was made, without hidden system messages.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := findDataset(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		loader, closeLoader, err := newLoader()
		if err != nil {
			return err
		}
		defer closeLoader()

		result, err := loader.LoadDataset(cmd.Context(), ds)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		conv, err := result.Conversation(args[1])
		if err != nil {
			return fmt.Errorf("%w (use 'chat-explorer list %s' to see available conversations)", err, ds.ID)
		}

		out := cmd.OutOrStdout()
		displayConversationHeader(out, conv)

		messages := conv.Messages
		total := len(messages)
		if limit > 0 && limit < total {
			messages = messages[:limit]
		}
		for i, msg := range messages {
			if err := displayMessage(out, i+1, msg, total); err != nil {
				return err
			}
		}

		if limit > 0 && limit < total {
			fmt.Fprintln(out)
			fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", total-limit)))
		}
		return nil
	},
}

func displayConversationHeader(out io.Writer, conv *internal.Conversation) {
	fmt.Fprintln(out, conversationHeaderStyle.Render(fmt.Sprintf("💬 %s", conv.Title)))

	var metaParts []string
	if created := internal.FormatEpoch(conv.CreateTime); created != "" {
		metaParts = append(metaParts, fmt.Sprintf("Created: %s", created))
	}
	if updated := internal.FormatEpoch(conv.UpdateTime); updated != "" {
		metaParts = append(metaParts, fmt.Sprintf("Updated: %s", updated))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(conv.Messages)))
	fmt.Fprintln(out, conversationMetaStyle.Render(strings.Join(metaParts, " • ")))
	fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, msg internal.Message, total int) error {
	var actorStyle lipgloss.Style
	var actorLabel string

	switch msg.Role {
	case "user":
		actorStyle = userMessageStyle
		actorLabel = "👤 User"
	case "assistant":
		actorStyle = assistantMessageStyle
		actorLabel = "🤖 Assistant"
	default:
		actorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		actorLabel = fmt.Sprintf("🔧 %s", msg.Role)
	}

	header := actorStyle.Render(actorLabel) + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if msg.Meta.ModelSlug != "" {
		header += " " + timestampStyle.Render(msg.Meta.ModelSlug)
	}
	if ts := internal.FormatEpoch(msg.CreateTime); ts != "" {
		header += " " + timestampStyle.Render(ts)
	}
	fmt.Fprintln(out, header)

	if showMeta {
		displayTooltip(out, internal.BuildTooltipSummary(msg))
	}

	if text := strings.TrimSpace(msg.Text); text != "" {
		if showRaw {
			fmt.Fprintln(out, messageContentStyle.Render(wrapText(text, showWidth)))
		} else {
			style := showStyle
			if style == "auto" {
				style = ""
			}
			rendered, err := render.Terminal(text, showWidth, style)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
	}

	for _, m := range msg.Media {
		if m.Renderable() {
			fmt.Fprintln(out, messageContentStyle.Render(fmt.Sprintf("📎 %s: %s", m.Kind, m.Src)))
		} else {
			fmt.Fprintln(out, messageContentStyle.Render(warningStyle.Render(fmt.Sprintf("⚠ %s attachment not found (%s)", m.Kind, m.Src))))
		}
	}

	fmt.Fprintln(out)
	return nil
}

func displayTooltip(out io.Writer, tip internal.TooltipSummary) {
	lines := []string{
		fmt.Sprintf("id: %s", tip.ID),
		fmt.Sprintf("content type: %s", tip.ContentType),
	}
	if tip.ParentID != "" {
		lines = append(lines, fmt.Sprintf("parent: %s", tip.ParentID))
	}
	if tip.Status != "" {
		lines = append(lines, fmt.Sprintf("status: %s", tip.Status))
	}
	if len(tip.SelectedSources) > 0 {
		lines = append(lines, fmt.Sprintf("sources: %d", len(tip.SelectedSources)))
	}
	if len(tip.SafeURLs) > 0 {
		lines = append(lines, fmt.Sprintf("safe urls: %d", len(tip.SafeURLs)))
	}
	for _, l := range lines {
		fmt.Fprintln(out, messageContentStyle.Render(timestampStyle.Render(l)))
	}
}

func wrapText(text string, width int) string {
	if width <= 0 {
		width = render.DefaultWidth
	}
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len([]rune(line)) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len([]rune(currentLine))+len([]rune(word))+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
	showCmd.Flags().BoolVar(&showMeta, "meta", false, "Show message provenance (ids, status, sources)")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print message text without Markdown rendering")
	showCmd.Flags().IntVarP(&showWidth, "width", "w", render.DefaultWidth, "Wrap width")
	showCmd.Flags().StringVar(&showStyle, "style", "auto", "Glamour style (auto, dark, light, notty)")
}
