package cmd

import (
	"fmt"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/history"
	"github.com/gnzdotmx/dailyshorts/internal/metrics"
	"github.com/gnzdotmx/dailyshorts/internal/modules/assemble"
	"github.com/gnzdotmx/dailyshorts/internal/modules/clips"
	"github.com/gnzdotmx/dailyshorts/internal/modules/publish"
	"github.com/gnzdotmx/dailyshorts/internal/modules/script"
	"github.com/gnzdotmx/dailyshorts/internal/modules/topics"
	"github.com/gnzdotmx/dailyshorts/internal/services/pexels"
	"github.com/gnzdotmx/dailyshorts/internal/services/textgen"
	"github.com/gnzdotmx/dailyshorts/internal/services/youtube"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/gnzdotmx/dailyshorts/internal/validator"
	"github.com/gnzdotmx/dailyshorts/internal/workflow"

	"github.com/spf13/cobra"
)

var (
	videoCount int
	dryRun     bool
	skipChecks bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily video pipeline",
	Long: `Generate topics, write scripts, assemble one video per topic and upload
them to YouTube Shorts. With --dry-run the videos are built but not uploaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logPath, err := utils.OpenDailyLog(cfg.Pipeline.LogDir, time.Now())
		if err != nil {
			utils.LogWarning("Daily log disabled: %v", err)
		} else {
			defer func() {
				if err := utils.CloseDailyLog(); err != nil {
					utils.LogWarning("Failed to close daily log: %v", err)
				}
			}()
			utils.LogVerbose("Logging to %s", logPath)
		}

		if !skipChecks {
			if err := validator.ValidateExternalTools(ctx); err != nil {
				return fmt.Errorf("dependency validation failed: %w", err)
			}
		}
		if err := validator.ValidateEnvVars(cfg.RequiredEnv(dryRun)); err != nil {
			return err
		}
		secrets := config.LoadSecrets()

		generator, err := textgen.New(ctx, cfg.TextGen, secrets)
		if err != nil {
			return err
		}
		topicModule, err := topics.New(generator, cfg.TextGen)
		if err != nil {
			return err
		}
		scriptModule, err := script.New(generator, cfg.TextGen)
		if err != nil {
			return err
		}
		pexelsClient, err := pexels.NewClient(secrets.PexelsAPIKey, cfg.Clips.BaseURL, cfg.Clips.Timeout)
		if err != nil {
			return err
		}

		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				utils.LogWarning("Failed to close history: %v", err)
			}
		}()

		deps := workflow.Dependencies{
			Topics:    topicModule,
			Scripts:   scriptModule,
			Clips:     clips.New(pexelsClient, cfg.Clips),
			Assembler: assemble.New(cfg.Assembly),
			History:   store,
			Metrics:   metrics.NewRecorder(),
		}

		var creds *youtube.Credentials
		if !dryRun {
			creds, err = youtube.ParseCredentials(secrets.YouTubeToken, secrets.YouTubeClient)
			if err != nil {
				return err
			}
			client, err := youtube.NewClient(ctx, creds, cfg.Upload.RetryDelay, nil)
			if err != nil {
				return err
			}
			deps.Publisher = publish.New(client, cfg.Upload)
		}

		_, runErr := workflow.New(cfg, deps).Run(ctx, workflow.Options{Count: videoCount, DryRun: dryRun})

		if creds != nil {
			if token, ok := creds.Refreshed(); ok {
				utils.LogVerbose("Access token refreshed during the run (valid until %s)", token.Expiry.Format(time.RFC3339))
			}
		}

		if runErr != nil {
			return fmt.Errorf("pipeline failed: %w", runErr)
		}
		utils.LogSuccess("Pipeline completed")
		return nil
	},
}

func init() {
	runCmd.Flags().IntVarP(&videoCount, "count", "n", 0, "Number of videos to produce (defaults to videosPerRun)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build the videos without uploading them")
	runCmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip the external tool checks")

	rootCmd.AddCommand(runCmd)
}
