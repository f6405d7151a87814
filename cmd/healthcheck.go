package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-explorer/internal"
	"github.com/spf13/cobra"
)

var healthcheckDetails bool

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that export folders can be found and loaded",
	Long: `Check the health of chat-explorer by verifying:
  • Data directory presence
  • Dataset discovery
  • conversations.json decoding and normalization
  • Attachment counts

This command is useful for debugging a data directory before serving it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Chat Explorer Health Check"))
		fmt.Fprintln(out)

		// Step 1: data directory
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking data directory..."))
		info, err := os.Stat(cfg.DataDir)
		if err != nil || !info.IsDir() {
			fmt.Fprintln(out, errorStyle.Render("❌ Data directory not found:"), cfg.DataDir)
			return fmt.Errorf("health check failed: data directory %s is not accessible", cfg.DataDir)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Data directory found"))
		if healthcheckDetails {
			fmt.Fprintf(out, "   Path: %s\n", cfg.DataDir)
		}
		fmt.Fprintln(out)

		// Step 2: datasets
		fmt.Fprintln(out, infoStyle.Render("Step 2: Discovering datasets..."))
		datasets, err := internal.DiscoverDatasets(cmd.Context(), cfg.DataDir)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to scan data directory:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if len(datasets) == 0 {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No datasets found"))
			fmt.Fprintln(out, "   Unzip a ChatGPT export into a folder under the data directory.")
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d dataset(s)", len(datasets))))
		}
		fmt.Fprintln(out)

		// Step 3: load each dataset
		fmt.Fprintln(out, infoStyle.Render("Step 3: Loading datasets..."))
		loader, closeLoader, err := newLoader()
		if err != nil {
			return err
		}
		defer closeLoader()

		failed := 0
		conversations := 0
		for _, ds := range datasets {
			result, err := loader.LoadFromFiles(cmd.Context(), ds.Path)
			if err != nil {
				failed++
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ %s:", ds.ID)), err)
				continue
			}
			conversations += result.Stats.Loaded
			line := fmt.Sprintf("✅ %s: %d conversation(s)", ds.ID, result.Stats.Loaded)
			if result.Stats.Skipped > 0 {
				fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("%s, %d skipped", line, result.Stats.Skipped)))
			} else {
				fmt.Fprintln(out, successStyle.Render(line))
			}
			if healthcheckDetails {
				fmt.Fprintf(out, "   Export: %s (%s)\n", ds.ExportPath, humanize.Bytes(uint64(ds.Size)))
				fmt.Fprintf(out, "   Files indexed: %d\n", len(result.Files))
			}
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)

		switch {
		case failed > 0:
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintf(out, "   • %d of %d dataset(s) could not be loaded\n", failed, len(datasets))
			return fmt.Errorf("health check failed: %d dataset(s) could not be loaded", failed)
		case len(datasets) == 0:
			fmt.Fprintln(out, warningStyle.Render("⚠️  Data directory available but no datasets found"))
			return nil
		default:
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Datasets: %d", len(datasets))))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Conversations: %d", conversations)))
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckDetails, "details", false, "Show detailed diagnostic information")
}
