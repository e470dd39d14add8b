package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/db"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/service"
	"github.com/osa911/portfolio-contact/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

var rootCmd = &cobra.Command{
	Use:   "contactctl",
	Short: "Portfolio contact backend admin CLI",
	Long: `contactctl inspects the message store and the SMTP relay of the portfolio
contact backend using the same configuration (.env / environment) as the server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		logger = logging.New(os.Stderr, level)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetBuildInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "contactctl %s\n", version.Info())
		fmt.Fprintf(cmd.OutOrStdout(), "  commit:   %s\n", version.ShortCommit())
		fmt.Fprintf(cmd.OutOrStdout(), "  go:       %s\n", info.GoVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "  platform: %s\n", info.Platform)
	},
}

// app bundles what the commands need, built from the server configuration
type app struct {
	cfg      *config.Config
	database *db.Database
	mail     *service.MailService
	contact  *service.ContactService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.Initialize(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	mail := service.NewMailService(cfg, logger)
	return &app{
		cfg:      cfg,
		database: database,
		mail:     mail,
		contact:  service.NewContactService(database.Messages, mail, cfg.SMTP.Required, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.database.Close(); err != nil {
		logger.Warn("Failed to close message store: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(smtpTestCmd)
	rootCmd.AddCommand(submitCmd)

	messagesCmd.Flags().Bool("json", false, "Print messages as JSON")
	messagesCmd.Flags().IntP("limit", "n", 0, "Only show the last N messages")

	submitCmd.Flags().String("name", "", "Sender name")
	submitCmd.Flags().String("email", "", "Sender email")
	submitCmd.Flags().String("subject", "", "Message subject")
	submitCmd.Flags().String("message", "", "Message body")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
