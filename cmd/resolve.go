package cmd

import (
	"fmt"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/spf13/cobra"
)

var (
	resolveConversation string
	resolveKind         string
	resolveAll          bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <dataset> <asset-pointer>",
	Short: "Find the file an asset pointer refers to",
	Long: `Resolve an asset pointer such as file-service://file-abc123 or
sediment://file_abc123 against the files of a dataset, and report which
lookup rule matched.

Examples:
  chat-explorer resolve mydata file-service://file-abc123 --kind image
  chat-explorer resolve mydata sediment://file_abc --kind audio --conversation <id>`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := findDataset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		files, err := internal.ListDatasetFiles(ds.Path, cfg.ListDepth)
		if err != nil {
			return err
		}

		pointer := internal.ParseAssetPointer(args[1])
		paths, tier := internal.BuildAssetIndex(files).ResolveWithTier(*pointer, internal.ResolveContext{
			ConversationID: resolveConversation,
			Kind:           internal.MediaKind(resolveKind),
		})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", infoStyle.Render("Pointer:"), pointer.String())
		fmt.Fprintf(out, "%s %s (id %s)\n", infoStyle.Render("Scheme:"), pointer.Scheme, pointer.ID)
		if len(paths) == 0 {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No matching file"))
			return &internal.NotFoundError{Kind: "asset", ID: args[1]}
		}

		fmt.Fprintf(out, "%s %s\n", infoStyle.Render("Tier:"), tier)
		fmt.Fprintln(out, successStyle.Render("✅ "+paths[0]))
		if resolveAll {
			for _, p := range paths[1:] {
				fmt.Fprintln(out, dateStyle.Render("   "+p))
			}
		} else if len(paths) > 1 {
			fmt.Fprintln(out, dateStyle.Render(fmt.Sprintf("   (%d more, use --all)", len(paths)-1)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveConversation, "conversation", "", "Conversation the pointer belongs to")
	resolveCmd.Flags().StringVar(&resolveKind, "kind", "", "Media kind (image, audio, video)")
	resolveCmd.Flags().BoolVar(&resolveAll, "all", false, "Show every candidate, not just the best")
}
