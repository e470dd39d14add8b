package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/osa911/portfolio-contact/internal/models"

	"github.com/spf13/cobra"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List stored contact messages",
	Long: `List every message in the configured store, oldest first.

Example:
  contactctl messages            # table
  contactctl messages -n 5       # last five
  contactctl messages --json     # same shape as GET /messages`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		messages, err := a.contact.List(ctx)
		if err != nil {
			return fmt.Errorf("cannot read messages: %w", err)
		}

		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(messages) > limit {
			messages = messages[len(messages)-limit:]
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeMessagesJSON(cmd.OutOrStdout(), messages)
		}
		return writeMessagesTable(cmd.OutOrStdout(), messages)
	},
}

func writeMessagesJSON(w io.Writer, messages []*models.StoredMessage) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		OK       bool                    `json:"ok"`
		Count    int                     `json:"count"`
		Messages []*models.StoredMessage `json:"messages"`
	}{true, len(messages), messages})
}

func writeMessagesTable(w io.Writer, messages []*models.StoredMessage) error {
	if len(messages) == 0 {
		_, err := fmt.Fprintln(w, "No messages stored.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tFROM\tSUBJECT\tMESSAGE")
	for _, m := range messages {
		fmt.Fprintf(tw, "%s\t%s\t%s <%s>\t%s\t%s\n",
			m.ID,
			m.CreatedAt.Local().Format(time.DateTime),
			m.Name,
			m.Email,
			truncate(m.Subject, 30),
			truncate(m.Message, 50),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d message(s)\n", len(messages))
	return err
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
