package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-explorer/internal"
	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List export folders in the data directory",
	Long: `List every folder under the data directory that holds a conversations.json.

The data directory defaults to ./data and can be set with --data-dir,
CHAT_EXPLORER_DATA_DIR or data_dir in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		datasets, err := internal.DiscoverDatasets(cmd.Context(), cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to scan data directory: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(datasets) == 0 {
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📁 No datasets found in %s", cfg.DataDir)))
			return nil
		}

		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📁 Found %d dataset(s)", len(datasets))))
		fmt.Fprintln(out)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Size")+"\t"+titleStyle.Render("Modified")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))
		for _, ds := range datasets {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				idStyle.Render(ds.ID),
				internal.TruncateMiddle(ds.Name, 40),
				countStyle.Render(humanize.Bytes(uint64(ds.Size))),
				dateStyle.Render(humanize.Time(ds.ModifiedAt)),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
