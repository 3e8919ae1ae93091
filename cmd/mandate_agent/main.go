// Package main provides the entry point for the mandate configurator CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	catalogPath string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "mandate_agent",
	Short: "Mandate configurator CLI and HTTP API server",
	Long: "Mandate configurator checks consulting mandate selections, prices them and " +
		"composes bilingual contract text, offers and printable contracts.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to catalog YAML (overrides config; default: embedded catalog)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of formatted boxes")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
