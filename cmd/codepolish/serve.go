package main

import (
	"os"
	"os/signal"
	"syscall"

	"codepolish/internal/server"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		analyzer, err := newAnalyzer(ctx, cfg, logger)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := server.New(analyzer, server.Options{
			Addr:            addr,
			MaxUploadBytes:  cfg.Server.MaxUploadBytes,
			ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
		}, logger)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}
