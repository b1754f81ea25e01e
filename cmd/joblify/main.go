// Package main provides the entry point for the Joblify employer console.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	apiURL     string
	verbose    bool
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:           "joblify",
	Short:         "Joblify employer console",
	Long:          "Joblify manages an employer's job postings, applications and company profile against the Joblify job-board API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Job-board API base URL (overrides JOBLIFY_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
