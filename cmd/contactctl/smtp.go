package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var smtpTestCmd = &cobra.Command{
	Use:   "smtp-test",
	Short: "Verify the SMTP relay connection and credentials",
	Long: `Connect to the configured relay and authenticate without sending mail.
Exits non-zero when the relay is configured but the handshake fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if relay := a.mail.Relay(); relay != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Relay: %s\n", relay)
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Checking SMTP relay..."
		s.Writer = cmd.ErrOrStderr()
		s.Start()
		check := a.contact.VerifyRelay(ctx)
		s.Stop()

		if !check.OK {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ %s\n", check.Message)
			return errors.New("smtp verification failed")
		}

		mark := "✅"
		if !check.Configured {
			mark = "⚠️"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, check.Message)
		return nil
	},
}
