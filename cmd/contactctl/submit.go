package main

import (
	"fmt"
	"time"

	"github.com/osa911/portfolio-contact/internal/models"
	"github.com/osa911/portfolio-contact/internal/service"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a message through the same pipeline as POST /contact",
	Long: `Validate, store and (if a relay is configured) deliver a message.
Useful for checking a deployment end to end.

Example:
  contactctl submit --name Ada --email ada@example.com --subject Hi --message "Hello"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		in := models.Submission{}
		in.Name, _ = cmd.Flags().GetString("name")
		in.Email, _ = cmd.Flags().GetString("email")
		in.Subject, _ = cmd.Flags().GetString("subject")
		in.Message, _ = cmd.Flags().GetString("message")

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Submitting..."
		s.Writer = cmd.ErrOrStderr()
		s.Start()
		result, err := a.contact.Submit(ctx, in)
		s.Stop()

		if err != nil {
			if se, ok := service.AsSubmitError(err); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "❌ %s\n", se.Message)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s (id %s)\n", result.Message, result.Record.ID)
		if result.Warning != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  %s\n", result.Warning)
		}
		return nil
	},
}
