package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"artool/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "artool",
	Short: "artool - accounts receivable aging and collections analysis",
	Long: `artool classifies an invoice export into paid, collectible AR, and
excluded (wire fees, withholding tax) buckets, ages the collectible
subset, and renders a multi-sheet summary report.

Input is a CSV export or a Google Sheet; output is a set of CSV files
or a Google spreadsheet with Executive Summary, Invoice Data, and
Collections Analysis sheets.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("artool executed")

		fmt.Println("Welcome to artool!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
