package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRun(t *testing.T) {
	rq := require.New(t)

	dir := t.TempDir()

	touch(t, filepath.Join(dir, "donation_opportunities_zip.json"))
	touch(t, filepath.Join(dir, "donation_opportunities_batch.csv"))
	touch(t, filepath.Join(dir, "scratch.tmp"))
	touch(t, filepath.Join(dir, "results", "old_run.json"))
	touch(t, filepath.Join(dir, "config.json"))
	touch(t, filepath.Join(dir, "token.json"))

	report := Run(context.Background(), dir)

	rq.Len(report.Removed, 4)
	rq.Empty(report.Failed)
	rq.ElementsMatch([]string{"config.json", "token.json"}, report.Preserved)
	rq.ElementsMatch([]string{"credentials.json", ".env"}, report.Missing)

	for _, kept := range []string{"config.json", "token.json"} {
		_, err := os.Stat(filepath.Join(dir, kept))
		rq.NoError(err)
	}

	for _, gone := range []string{
		"donation_opportunities_zip.json",
		"donation_opportunities_batch.csv",
		"scratch.tmp",
		filepath.Join("results", "old_run.json"),
	} {
		_, err := os.Stat(filepath.Join(dir, gone))
		rq.True(os.IsNotExist(err))
	}
}

func TestRunEmptyDir(t *testing.T) {
	rq := require.New(t)

	report := Run(context.Background(), t.TempDir())

	rq.Empty(report.Removed)
	rq.Empty(report.Failed)
	rq.Empty(report.Preserved)
	rq.Len(report.Missing, 4)
}
