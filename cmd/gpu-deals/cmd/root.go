// Package cmd implements the CLI commands for the gpu-deals server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gpu-deals",
	Short: "Track GPU prices and surface the best value per dollar",
	Long: "An API-first service that polls a GPU pricing endpoint on a cadence, " +
		"computes benchmark-per-dollar value for each model, and serves the ranked " +
		"results with configurable price alerts.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
