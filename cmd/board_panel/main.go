// Package main provides the entry point for the Board Panel advisory service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "board_panel",
	Short: "Board Panel startup advisory service",
	Long:  "Board Panel runs a five-seat AI advisory analysis (marketing, technical, organizational, competitive, financial) over a structured startup profile and returns actionable suggestions per category.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
