package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-explorer/internal"
	"github.com/spf13/cobra"
)

var (
	listClearCache bool
	listPage       int
	listPageSize   int
)

var listCmd = &cobra.Command{
	Use:   "list [dataset]",
	Short: "List conversations in a dataset",
	Long: `List the conversations of a dataset, most recently active first.

The dataset argument may be omitted when the data directory holds only one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		ds, err := findDataset(cmd.Context(), id)
		if err != nil {
			return err
		}

		loader, closeLoader, err := newLoader()
		if err != nil {
			return err
		}
		defer closeLoader()

		if listClearCache {
			if err := loader.ClearCache(); err != nil {
				internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("Failed to clear cache: %v", err))
			}
		}

		var index *internal.SlimIndex
		err = internal.ShowProgressTo(cmd.Context(), cmd.ErrOrStderr(), "Loading "+ds.ID, func() error {
			var loadErr error
			index, _, loadErr = loader.LoadIndex(cmd.Context(), ds)
			return loadErr
		})
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		pageSize := listPageSize
		if pageSize <= 0 {
			pageSize = cfg.PageSize
		}
		displayConversations(cmd.OutOrStdout(), ds, index, internal.Paginate(index.Conversations, listPage, pageSize))
		return nil
	},
}

func displayConversations(out io.Writer, ds internal.Dataset, index *internal.SlimIndex, page internal.Page[internal.SlimConversation]) {
	if page.Total == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No conversations found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %s: %d conversation(s)", ds.Name, page.Total)))
	if index.Stats.Skipped > 0 {
		fmt.Fprintln(out, dateStyle.Render(fmt.Sprintf("   %d record(s) without an id were skipped", index.Stats.Skipped)))
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, c := range page.Items {
		title := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(internal.TruncateMiddle(c.Title, 50))
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			idStyle.Render(c.ID),
			title,
			countStyle.Render(strconv.Itoa(c.MessageCount)),
			dateStyle.Render(formatRelative(c.UpdateTime)),
		)
	}
	_ = w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render(fmt.Sprintf("Page %d of %d", page.Page, page.Pages)))
	if page.Page < page.Pages {
		fmt.Fprintln(out, idStyle.Render(fmt.Sprintf("💡 Tip: use --page %d for more", page.Page+1)))
	}
}

// formatRelative renders an epoch timestamp the way the list view shows dates
func formatRelative(seconds *float64) string {
	if seconds == nil {
		return "—"
	}
	t := internal.EpochTime(seconds)
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listClearCache, "clear-cache", false, "Clear the cache before running")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page to show")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Conversations per page (default from config)")
}
