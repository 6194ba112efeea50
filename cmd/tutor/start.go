package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gestasai/academy-tutor/pkg/log"
	"github.com/gestasai/academy-tutor/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tutor services",
	Long:  `Initializes and starts the configured chat transports (Telegram, CLI).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting academy tutor")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("academy tutor has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
