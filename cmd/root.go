package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
	// configPath points at the optional channel profile
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "dailyshorts",
	Short: "Daily pipeline producing and publishing short-form knowledge videos",
	Long: `dailyshorts generates a handful of topics every day, writes a narrated
script for each, assembles a portrait video from stock clips and uploads it
to YouTube Shorts.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set the global log level based on the flag
		logLevel := utils.LogLevelFromString(verbosityLevel)
		utils.SetLogLevel(logLevel)
	},
}

// Execute runs the root command; Ctrl-C cancels the in-flight stage
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Initialize global flags
	rootCmd.PersistentFlags().StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the channel profile YAML (defaults are used when omitted)")
}
