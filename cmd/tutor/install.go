package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gestasai/academy-tutor/internal/config"
	"github.com/gestasai/academy-tutor/internal/service/setup"
	"github.com/gestasai/academy-tutor/pkg/log"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure the tutor (API key, model)",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup wizard")

		// run wizard (includes save step)
		if _, err := setup.RunWizard(); err != nil {
			return err
		}

		// Load the newly created .env file so the settings seed can see it
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		// Persist the wizard's choices into the settings record
		e, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! Import a lesson with 'tutor lesson import' and run 'tutor start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
