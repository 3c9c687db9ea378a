package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spiffcs/refbot/internal/server"
)

// NewCmdServe creates the serve command.
func NewCmdServe(opts *Options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot's HTTP endpoint",
		Long: `Serve the chat bot over HTTP until interrupted.

Routes:
  POST /v1/messages                  resolve references in a message
  GET  /v1/channels/{channel}/stars  star count with per-channel delta
  GET  /v1/channels/{channel}/forks  fork count with per-channel delta
  DELETE /v1/channels/{channel}/{metric}  forget the channel's last value
  GET  /v1/search/autocomplete?q=    issue title autocomplete
  GET  /v1/search/{value}            link for a chosen search result
  GET  /healthz                      liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *Options, addr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setupRuntime(ctx, opts)
	if err != nil {
		return err
	}

	settings := rt.cfg.GetServerSettings()
	if addr != "" {
		settings.Addr = addr
	}

	srv := server.New(rt.svc, server.Settings{
		Addr:         settings.Addr,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
	})
	return srv.Run(ctx)
}
