package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/didact/internal/demo"
	"github.com/vango-dev/didact/internal/live"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr string
		name string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the counter demo",
		Long: `Serve the counter demo over HTTP. Browsers receive every commit
over a WebSocket and send clicks back to the engine.

Examples:
  didact serve
  didact serve --addr 127.0.0.1:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Live.Addr = addr
			}
			logger := newLogger(cmd, cfg)

			srv, err := live.New(live.Options{
				Element: demo.New(logger).Element(name),
				Config:  cfg,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			info(cmd.OutOrStdout(), "Preview at http://%s", displayAddr(cfg.Live.Addr))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from didact.json)")
	cmd.Flags().StringVarP(&name, "name", "n", "foso", "Name shown in the heading")

	return cmd
}

// displayAddr turns a listen address like ":7331" into a browsable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
