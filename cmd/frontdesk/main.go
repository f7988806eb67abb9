package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "frontdesk",
		Short:        "Clinic front desk: appointment scheduling API and Telegram bot",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(botCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(paymentsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
