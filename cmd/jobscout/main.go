// Package main provides the entry point for the job-scout discovery CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Automated job-listing discovery",
	Long:  "jobscout drives a browser against job-board search pages, filters and scores the results against your profile, and stores new candidates with daily quota enforcement.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
