package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"donation_finder/internal/cleanup"
)

var cleanCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "clean",
	Short: "Remove generated result and temporary files",
	Long: `Removes donation_opportunities_*.json/.csv, files under results/ and
*.tmp/*.temp from the current directory. Config and credential files are
left in place.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report := cleanup.Run(cmd.Context(), ".")

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Removed %d files", len(report.Removed))
		if len(report.Failed) > 0 {
			fmt.Fprintf(out, ", %d failed", len(report.Failed))
		}
		fmt.Fprintln(out)

		if len(report.Preserved) > 0 {
			fmt.Fprintln(out, "\nPreserved important files:")
			for _, file := range report.Preserved {
				fmt.Fprintf(out, "   ✅ %s\n", file)
			}
		}
		for _, file := range report.Missing {
			fmt.Fprintf(out, "   ❌ %s (not found)\n", file)
		}

		return nil
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(cleanCmd)
}
