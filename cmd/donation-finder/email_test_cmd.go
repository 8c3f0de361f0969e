package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"donation_finder/internal/config"
	"donation_finder/internal/infrastructure/mail"
)

var emailTestCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "email-test",
	Short: "Show the email configuration status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config.Load: %w", err)
		}

		status := mail.NewSender(cfg.Mail, cfg.File.EmailSettings).Status()

		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Email configuration:")
		fmt.Fprintf(out, "   enabled:     %s\n", checkmark(status.Enabled))
		fmt.Fprintf(out, "   recipient:   %s\n", orUnset(status.Recipient))
		fmt.Fprintf(out, "   credentials: %s\n", checkmark(status.CredentialsFound))
		fmt.Fprintf(out, "   token:       %s\n", checkmark(status.TokenFound))

		if status.Ready() {
			fmt.Fprintln(out, "\n✅ Email is configured, reports will be sent with --email")
			return nil
		}

		fmt.Fprintln(out, "\n❌ Email is not configured")
		fmt.Fprintln(out)
		fmt.Fprintln(out, mail.SetupInstructions)

		return nil
	},
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func init() { //nolint:gochecknoinits
	rootCmd.AddCommand(emailTestCmd)
}
