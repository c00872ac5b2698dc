package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDatedSkipsForeignNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20260314-063000", "20260312-063000", "notes", "2026-03-13"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260313-063000"), []byte("x"), 0644))

	entries, err := listDated(dir, runDirLayout, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "20260312-063000", entries[0].Name)
	assert.Equal(t, "20260314-063000", entries[1].Name)
}

func TestListDatedMissingDir(t *testing.T) {
	entries, err := listDated(filepath.Join(t.TempDir(), "missing"), runDirLayout, true)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSelectExpired(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.Local)
	day := func(d int) datedEntry {
		ts := time.Date(2026, 3, d, 6, 30, 0, 0, time.Local)
		return datedEntry{Name: ts.Format(logFileLayout), Time: ts}
	}
	entries := []datedEntry{day(10), day(15), day(18), day(19)}

	tests := []struct {
		name      string
		keep      int
		olderThan int
		want      []string
	}{
		{"nothing", 0, 0, nil},
		{"keep latest", 2, 0, []string{"log_2026-03-10.txt", "log_2026-03-15.txt"}},
		{"older than", 0, 3, []string{"log_2026-03-10.txt", "log_2026-03-15.txt"}},
		{"both without duplicates", 3, 7, []string{"log_2026-03-10.txt"}},
		{"keep more than present", 10, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectExpired(entries, tt.keep, tt.olderThan, now))
		})
	}
}

func TestCleanupDirRemovesExpiredRuns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20260301-063000", "20260302-063000", "20260303-063000"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name, "nested"), 0755))
	}

	keepLatest, olderThanDays, cleanupDryRun = 1, 0, false
	t.Cleanup(func() { keepLatest, olderThanDays, cleanupDryRun = 0, 0, false })

	deleted, err := cleanupDir(dir, runDirLayout, true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.NoDirExists(t, filepath.Join(dir, "20260301-063000"))
	assert.DirExists(t, filepath.Join(dir, "20260303-063000"))
}

func TestCleanupDirDryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log_2020-01-01.txt"), []byte("x"), 0644))

	keepLatest, olderThanDays, cleanupDryRun = 0, 30, true
	t.Cleanup(func() { keepLatest, olderThanDays, cleanupDryRun = 0, 0, false })

	deleted, err := cleanupDir(dir, logFileLayout, false, time.Now())
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.FileExists(t, filepath.Join(dir, "log_2020-01-01.txt"))
}
