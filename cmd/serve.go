package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve datasets over HTTP",
	Long: `Start the JSON API used by the browser viewer.

Routes:
  GET    /health
  GET    /metrics
  GET    /api/datasets
  GET    /api/datasets/{id}/conversations?page=&pageSize=
  GET    /api/datasets/{id}/conversations/{conversation}?render=html
  GET    /api/datasets/{id}/resolve?pointer=&kind=&conversation=
  GET    /api/datasets/{id}/files/{path}
  DELETE /api/cache`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, closeLoader, err := newLoader()
		if err != nil {
			return err
		}
		defer closeLoader()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Options{
			DataDir:  cfg.DataDir,
			Loader:   loader,
			PageSize: cfg.PageSize,
		})
		return srv.ListenAndServe(ctx, cfg.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
	_ = v.BindPFlag(internal.KeyAddr, serveCmd.Flags().Lookup("addr"))
}
