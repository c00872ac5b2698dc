package cmd

import (
	"fmt"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/gnzdotmx/dailyshorts/internal/validator"

	"github.com/spf13/cobra"
)

var validateDryRun bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate environment setup",
	Long:  `Check that ffmpeg, ffprobe and edge-tts are installed and that the API keys the profile needs are set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogInfo("Validating environment...")

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		utils.LogSuccess("Profile: OK")

		if err := validator.ValidateExternalTools(cmd.Context()); err != nil {
			return fmt.Errorf("external tools validation failed: %w", err)
		}
		utils.LogSuccess("External tools: OK")

		if err := validator.ValidateEnvVars(cfg.RequiredEnv(validateDryRun)); err != nil {
			return fmt.Errorf("environment variables validation failed: %w", err)
		}
		utils.LogSuccess("Environment variables: OK")

		utils.LogSuccess("Environment validation completed successfully")
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateDryRun, "dry-run", false, "Skip the YouTube credential checks")
	rootCmd.AddCommand(validateCmd)
}
