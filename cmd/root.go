// Package cmd implements the cart CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "cart",
	Short: "Derive least-privilege grant scripts for Cortex agents",
	Long:  "cart inspects a Cortex agent's tool specification, discovers every base table, search service, procedure, and stage its tools depend on, and renders an idempotent least-privilege grant script.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "cart.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(generateCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("cart %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
