package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/quillbot/pkg/log"
	"github.com/sandevgo/quillbot/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the QuillBot transports",
	Long:  `Initializes the completion provider and starts all enabled transports (web, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting quillbot")

		services := NewServices(ctx)

		// Drain the log writer last, after every transport has shut down.
		services = append(services, srv.NewCleanup(func() error {
			logger.Info().Msg("quillbot has been shut down gracefully")
			flushLog()
			return nil
		}))

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
