// Package main provides the entry point for the TempSuisse platform server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tempsuisse",
	Short: "TempSuisse platform server",
	Long:  "TempSuisse serves the Swiss temporary-work agency directory, the blog, and the interactive CV builder with PDF export.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
