package cleanup

import (
	"context"
	"os"
	"path/filepath"

	"donation_finder/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// resultPatterns match generated artifacts relative to the working directory.
var resultPatterns = []string{ //nolint:gochecknoglobals
	"donation_opportunities_*.json",
	"donation_opportunities_*.csv",
	"*.tmp",
	"*.temp",
}

// preservedFiles are never touched and get reported after a run.
var preservedFiles = []string{ //nolint:gochecknoglobals
	"config.json",
	"credentials.json",
	"token.json",
	".env",
}

// Report lists what a cleanup run did.
type Report struct {
	Removed   []string
	Failed    []string
	Preserved []string
	Missing   []string
}

// Run removes generated result files and temporary files under dir, plus any
// regular files inside dir/results. Config and credential files stay in
// place. Individual removal failures are collected, not fatal.
func Run(ctx context.Context, dir string) Report {
	var report Report

	for _, pattern := range resultPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			logger(ctx).Error("bad cleanup pattern", "pattern", pattern, "error", err)
			continue
		}

		for _, file := range matches {
			remove(ctx, file, &report)
		}
	}

	resultsDir := filepath.Join(dir, "results")
	if entries, err := os.ReadDir(resultsDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			remove(ctx, filepath.Join(resultsDir, entry.Name()), &report)
		}
	}

	for _, file := range preservedFiles {
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			report.Preserved = append(report.Preserved, file)
		} else {
			report.Missing = append(report.Missing, file)
		}
	}

	logger(ctx).Info("cleanup completed",
		"removed", len(report.Removed),
		"failed", len(report.Failed),
	)

	return report
}

func remove(ctx context.Context, file string, report *Report) {
	if err := os.Remove(file); err != nil {
		logger(ctx).Error("removal failed", "file", file, "error", err)
		report.Failed = append(report.Failed, file)
		return
	}

	logger(ctx).Info("removed", "file", file)
	report.Removed = append(report.Removed, file)
}
