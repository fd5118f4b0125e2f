// Package config loads server configuration from the environment. It is read
// once at startup, before the LLM client is constructed, so no component
// needs lazy first-use initialization.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names consumed by the server.
const (
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvBaseURL = "GEMINI_BASE_URL"
	EnvPort    = "PORT"
)

// DefaultPort is used when PORT is unset.
const DefaultPort = 8080

// Config holds the server configuration.
type Config struct {
	Port    int
	APIKey  string
	BaseURL string
}

// FromEnv reads configuration from the environment. The API key is required;
// the base URL is an optional custom LLM endpoint.
func FromEnv() (*Config, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required", EnvAPIKey)
	}

	port := DefaultPort
	if raw := os.Getenv(EnvPort); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return nil, fmt.Errorf("invalid %s value %q", EnvPort, raw)
		}
		port = parsed
	}

	return &Config{
		Port:    port,
		APIKey:  apiKey,
		BaseURL: os.Getenv(EnvBaseURL),
	}, nil
}
