package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/internal/export"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	format         string
	outputDir      string
	conversationID string
	clearCache     bool
)

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Export conversations to files",
	Long: `Export the conversations of a dataset to jsonl, md, yaml, json, html or sqlite.

Every format but sqlite writes one file per conversation. sqlite writes a
single conversations.db holding conversations, messages and media.
Use 'chat-explorer list' to see available conversation IDs.`,
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

		if clearCache {
			if err := loader.ClearCache(); err != nil {
				log.Warn().Err(err).Msg("failed to clear cache")
			}
		}

		var result *internal.LoadResult
		err = internal.ShowProgressTo(cmd.Context(), cmd.ErrOrStderr(), "Loading "+ds.ID, func() error {
			var loadErr error
			result, loadErr = loader.LoadDataset(cmd.Context(), ds)
			return loadErr
		})
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		conversations := result.Conversations
		if conversationID != "" {
			conv, err := result.Conversation(conversationID)
			if err != nil {
				return fmt.Errorf("%w (use 'chat-explorer list %s' to see available conversations)", err, ds.ID)
			}
			conversations = []internal.Conversation{*conv}
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		msg := fmt.Sprintf("Exporting %d conversation(s) to %s", len(conversations), outputDir)
		err = internal.ShowProgressTo(cmd.Context(), cmd.ErrOrStderr(), msg, func() error {
			if format == "sqlite" {
				return exportSQLite(cmd.Context(), conversations)
			}
			return exportFiles(ds, conversations)
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Export complete: %d conversation(s) exported to %s", len(conversations), outputDir))
		return nil
	},
}

func exportFiles(ds internal.Dataset, conversations []internal.Conversation) error {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	if h, ok := exporter.(*export.HTMLExporter); ok {
		h.MediaBase = mediaBase(ds.Path, outputDir)
	}

	for i := range conversations {
		conv := &conversations[i]
		filename := fmt.Sprintf("conversation_%s.%s", fileNameReplacer.Replace(conv.ID), exporter.Extension())
		path := filepath.Join(outputDir, filename)

		file, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		if err := exporter.Export(conv, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to close export file")
		}
	}
	return nil
}

func exportSQLite(ctx context.Context, conversations []internal.Conversation) error {
	w, err := export.OpenSQLite(filepath.Join(outputDir, "conversations.db"))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	for i := range conversations {
		if err := w.Write(ctx, &conversations[i]); err != nil {
			return err
		}
	}
	return nil
}

// mediaBase is the dataset root as seen from the export folder, so relative
// attachment paths keep working from exported HTML
func mediaBase(datasetPath, outDir string) string {
	absData, err := filepath.Abs(datasetPath)
	if err != nil {
		return ""
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absOut, absData)
	if err != nil {
		return filepath.ToSlash(absData) + "/"
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format ("+strings.Join(append(export.Formats, "sqlite"), ", ")+")")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&conversationID, "conversation", "", "Export a specific conversation by ID")
	exportCmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Clear the cache before running")
}
