// Package config loads process configuration from an optional TOML file
// and the environment. Environment variables always take precedence over
// file values, and a .env file in the working directory is honoured for
// local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when neither the config file nor the environment
// provides a value.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8000
	DefaultRequestsPerSecond = 10
	DefaultBurstSize         = 20
)

// Config holds everything the process needs to serve requests.
type Config struct {
	// APIKey authenticates against the upstream vector-store API.
	APIKey string

	// VectorStoreID identifies the vector store to search.
	VectorStoreID string

	// Host and Port are the bind address for the HTTP server.
	Host string
	Port int

	// AllowedOrigins is the CORS allow-list. A single "*" entry, or an
	// empty list, allows any origin.
	AllowedOrigins []string

	// RequestsPerSecond and BurstSize bound the rate of upstream calls.
	RequestsPerSecond float64
	BurstSize         int
}

// fileConfig mirrors the TOML layout of ~/.lodestar/config.toml.
type fileConfig struct {
	APIKey            string   `toml:"api_key"`
	VectorStoreID     string   `toml:"vector_store_id"`
	Host              string   `toml:"host"`
	Port              int      `toml:"port"`
	AllowedOrigins    []string `toml:"allowed_origins"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	BurstSize         int      `toml:"burst_size"`
}

// Load builds a Config from defaults, the optional config file and the
// environment, in that order of precedence. If configDir is empty the
// file is looked up under ~/.lodestar. A missing file is not an error.
func Load(configDir string) (*Config, error) {
	// Best effort: a missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		RequestsPerSecond: DefaultRequestsPerSecond,
		BurstSize:         DefaultBurstSize,
	}

	if err := cfg.applyFile(configDir); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the values required to reach the upstream store
// are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredentials)
	}
	if c.VectorStoreID == "" {
		return fmt.Errorf("%w: VECTOR_STORE_ID is not set", ErrMissingCredentials)
	}
	return nil
}

// ListenAddr returns the host:port pair the HTTP server should bind to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) applyFile(configDir string) error {
	path, err := filePath(configDir)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	if fc.VectorStoreID != "" {
		c.VectorStoreID = fc.VectorStoreID
	}
	if fc.Host != "" {
		c.Host = fc.Host
	}
	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.RequestsPerSecond > 0 {
		c.RequestsPerSecond = fc.RequestsPerSecond
	}
	if fc.BurstSize > 0 {
		c.BurstSize = fc.BurstSize
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("VECTOR_STORE_ID"); v != "" {
		c.VectorStoreID = v
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitOrigins(v)
	}
	return nil
}

// splitOrigins parses a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// filePath resolves the config file location. If configDir is empty it
// defaults to ~/.lodestar.
func filePath(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		configDir = filepath.Join(home, ".lodestar")
	}
	return filepath.Join(configDir, "config.toml"), nil
}
