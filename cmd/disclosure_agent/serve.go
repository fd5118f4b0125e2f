package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/disclosure-assistant/internal/config"
	"github.com/marcus/disclosure-assistant/internal/docgen"
	"github.com/marcus/disclosure-assistant/internal/llm"
	"github.com/marcus/disclosure-assistant/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the generation API server",
	Long:  `Start the HTTP server exposing the document generation and regeneration endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	// The LLM client is built once here, after configuration load, and
	// injected down; no component initializes it lazily.
	client, err := llm.NewClient(context.Background(), nil, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	srv := server.New(server.Config{
		Port: cfg.Port,
		Docs: docgen.NewService(client),
	})
	return srv.Start()
}
