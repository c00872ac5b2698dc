package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/gnzdotmx/dailyshorts/internal/workflow"
	"github.com/spf13/cobra"
)

const (
	runDirLayout  = workflow.RunDirLayout
	logFileLayout = "log_2006-01-02.txt"
)

var (
	keepLatest    int
	olderThanDays int
	cleanupDryRun bool
)

// datedEntry is a run directory or log file with the time encoded in its name
type datedEntry struct {
	Name string
	Time time.Time
}

// listDated returns the entries of dir whose names parse with layout, oldest first
func listDated(dir, layout string, wantDir bool) ([]datedEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var dated []datedEntry
	for _, entry := range entries {
		if entry.IsDir() != wantDir {
			continue
		}
		t, err := time.ParseInLocation(layout, entry.Name(), time.Local)
		if err != nil {
			continue
		}
		dated = append(dated, datedEntry{Name: entry.Name(), Time: t})
	}

	sort.Slice(dated, func(i, j int) bool {
		return dated[i].Time.Before(dated[j].Time)
	})
	return dated, nil
}

// selectExpired picks the entries beyond the newest keep ones and those older than the cutoff
func selectExpired(entries []datedEntry, keep int, olderThan int, now time.Time) []string {
	var expired []string
	if keep > 0 && len(entries) > keep {
		for _, e := range entries[:len(entries)-keep] {
			expired = append(expired, e.Name)
		}
	}

	if olderThan > 0 {
		cutoff := now.AddDate(0, 0, -olderThan)
		for _, e := range entries {
			if e.Time.Before(cutoff) && !slices.Contains(expired, e.Name) {
				expired = append(expired, e.Name)
			}
		}
	}
	return expired
}

// cleanupDir removes the expired entries of one directory
func cleanupDir(dir, layout string, wantDir bool, now time.Time) (int, error) {
	entries, err := listDated(dir, layout, wantDir)
	if err != nil {
		return 0, err
	}
	toDelete := selectExpired(entries, keepLatest, olderThanDays, now)
	if len(toDelete) == 0 {
		return 0, nil
	}

	fmt.Printf("Found %d entries to delete in %s:\n", len(toDelete), dir)
	for _, name := range toDelete {
		fmt.Printf("- %s\n", name)
	}
	if cleanupDryRun {
		return 0, nil
	}

	deleted := 0
	for _, name := range toDelete {
		fullPath := filepath.Join(dir, name)
		if err := os.RemoveAll(fullPath); err != nil {
			utils.LogError("Error deleting %s: %v", fullPath, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean up old run directories and daily logs",
	Long:  `Remove old run folders and daily log files based on age or count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if keepLatest <= 0 && olderThanDays <= 0 {
			return fmt.Errorf("set --keep-latest or --older-than")
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		now := time.Now()
		runs, err := cleanupDir(cfg.Pipeline.OutputDir, runDirLayout, true, now)
		if err != nil {
			return err
		}
		logs, err := cleanupDir(cfg.Pipeline.LogDir, logFileLayout, false, now)
		if err != nil {
			return err
		}

		if cleanupDryRun {
			fmt.Println("Dry run - nothing was deleted.")
			return nil
		}
		fmt.Printf("Cleanup completed: %d run directories and %d log files deleted.\n", runs, logs)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVarP(&keepLatest, "keep-latest", "k", 0, "Keep this many latest runs and log files")
	cleanupCmd.Flags().IntVarP(&olderThanDays, "older-than", "o", 0, "Delete runs and log files older than this many days")
	cleanupCmd.Flags().BoolVarP(&cleanupDryRun, "dry-run", "n", false, "Show what would be deleted without actually deleting")

	rootCmd.AddCommand(cleanupCmd)
}
