// Package main provides the entry point for the Disclosure Assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "disclosure_agent",
	Short: "Disclosure Assistant generation service",
	Long:  "Disclosure Assistant generates disclosure narratives and pre-adverse-action response letters from a user's background via a stateless HTTP API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
