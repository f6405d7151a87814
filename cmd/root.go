package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	v   = viper.New()
	cfg internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-explorer",
	Short: "Browse and export ChatGPT data exports",
	Long: `Browse, search and export the conversations inside ChatGPT data exports.

Each export folder (the unzipped download holding conversations.json and its
attachments) is a dataset. Put one or more of them under the data directory.

Features:
  • Rebuilds the visible thread of every conversation from its edit tree
  • Links image, audio and video attachments back to their files
  • Exports to JSONL, Markdown, YAML, JSON, HTML or SQLite
  • Serves a JSON API for the browser viewer

Quick Start:
  chat-explorer datasets                      # List export folders
  chat-explorer list <dataset>                # List conversations
  chat-explorer show <dataset> <id>           # Read a conversation
  chat-explorer export <dataset> --format md  # Export as Markdown
  chat-explorer serve                         # Start the API server`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := InitConfig(); err != nil {
			return err
		}
		internal.SetupLoggingTo(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	SilenceUsage: true,
}

// InitConfig resolves the configuration from flags, environment and the
// optional config file
func InitConfig() error {
	if err := internal.InitViper(v, configPath); err != nil {
		return err
	}
	cfg = internal.ConfigFrom(v)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLoader builds a loader with a session cache sized from the config
func newLoader() (*internal.Loader, func(), error) {
	session, err := internal.NewSessionCache(
		internal.WithMaxBytes(cfg.CacheMaxSize),
		internal.WithTTL(cfg.CacheTTL),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session cache: %w", err)
	}
	loader := internal.NewLoader(session,
		internal.WithWalkLimit(cfg.MaxWalkSteps),
		internal.WithListDepth(cfg.ListDepth),
	)
	return loader, func() { _ = session.Close() }, nil
}

// findDataset looks a dataset up by id under the data directory. An empty id
// selects the only dataset when there is exactly one.
func findDataset(ctx context.Context, id string) (internal.Dataset, error) {
	datasets, err := internal.DiscoverDatasets(ctx, cfg.DataDir)
	if err != nil {
		return internal.Dataset{}, err
	}
	if id != "" {
		return internal.FindDataset(datasets, id)
	}
	switch len(datasets) {
	case 0:
		return internal.Dataset{}, fmt.Errorf("no datasets found in %s", cfg.DataDir)
	case 1:
		return datasets[0], nil
	default:
		return internal.Dataset{}, fmt.Errorf("%d datasets found in %s, name one (see 'chat-explorer datasets')", len(datasets), cfg.DataDir)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./chat-explorer.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding export folders")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (auto, text, json)")

	_ = v.BindPFlag(internal.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	_ = v.BindPFlag(internal.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = v.BindPFlag(internal.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag(internal.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
