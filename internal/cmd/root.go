package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "expotrack",
	Short: "Expotrack - exhibitor orders and checklist tracking",
	Long: `Expotrack aggregates exhibitor orders and booth checklists for a trade-show
floor. It reads a shared spreadsheet (directly or through a chat-based query
service), normalizes the rows and serves them over a cached JSON API.

Run it as a server, or use the CLI commands to check upstream connectivity
and inspect a single booth.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search ./deploy, ., $HOME/.expotrack, /etc/expotrack)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
