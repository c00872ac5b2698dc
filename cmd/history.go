package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/history"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent pipeline outcomes",
	Long:  `Show the latest videos recorded in the history store with their status and URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
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

		videos, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(videos) == 0 {
			fmt.Println("No videos recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSTATUS\tSUBJECT\tURL")
		for _, v := range videos {
			link := v.URL
			if link == "" {
				link = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.CreatedAt.Format("2006-01-02 15:04"), v.Status, v.Subject, link)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
