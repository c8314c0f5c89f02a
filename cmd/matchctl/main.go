// Package main provides the matchctl CLI: resume parsing, record
// embedding, and candidate ranking from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Teammate matching toolkit",
	Long:  "matchctl extracts structured profiles from resumes, embeds profiles and projects as semantic vectors, and ranks candidates for collaborative projects.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
