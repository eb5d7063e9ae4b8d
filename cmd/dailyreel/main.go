package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "dailyreel",
	Short:   "Unattended daily reel generator",
	Version: version,
	Long: `dailyreel produces one short vertical video per day: a background clip,
a music bed, and a line of text, plus a ready-to-use caption file. It keeps a
run ledger so restarts and overlapping schedules never produce a second reel
for the same date.

With no arguments it runs as the daily daemon.`,
	Args:          cobra.NoArgs,
	RunE:          runDaemon,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
