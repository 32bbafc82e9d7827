package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpress/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDPRESS_CONFIG: config file name or path
	ContentDir string        // MDPRESS_CONTENT_DIR: markdown source directory
	OutputDir  string        // MDPRESS_OUTPUT_DIR: build target directory
	Style      string        // MDPRESS_STYLE: page style name or path
	Highlight  string        // MDPRESS_HIGHLIGHT: chroma style name
	AssetPath  string        // MDPRESS_ASSET_PATH: custom asset directory
	Addr       string        // MDPRESS_ADDR: preview server listen address
	Timeout    time.Duration // MDPRESS_TIMEOUT: per-page render timeout
	Workers    int           // MDPRESS_WORKERS: parallel workers
}

// knownEnvVars lists valid MDPRESS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPRESS_CONFIG":      true,
	"MDPRESS_CONTENT_DIR": true,
	"MDPRESS_OUTPUT_DIR":  true,
	"MDPRESS_STYLE":       true,
	"MDPRESS_HIGHLIGHT":   true,
	"MDPRESS_ASSET_PATH":  true,
	"MDPRESS_ADDR":        true,
	"MDPRESS_TIMEOUT":     true,
	"MDPRESS_WORKERS":     true,
	// Recognized but consumed elsewhere (doctor, container detection)
	"MDPRESS_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MDPRESS_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPRESS_CONFIG"),
		ContentDir: os.Getenv("MDPRESS_CONTENT_DIR"),
		OutputDir:  os.Getenv("MDPRESS_OUTPUT_DIR"),
		Style:      os.Getenv("MDPRESS_STYLE"),
		Highlight:  os.Getenv("MDPRESS_HIGHLIGHT"),
		AssetPath:  os.Getenv("MDPRESS_ASSET_PATH"),
		Addr:       os.Getenv("MDPRESS_ADDR"),
	}

	if timeout := os.Getenv("MDPRESS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDPRESS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPRESS_* variables.
// Helps catch typos like MDPRESS_CONTENT instead of MDPRESS_CONTENT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPRESS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config, after the
// file is loaded and before flags are merged. The resulting precedence is
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Content.OutputDir = env.OutputDir
	}
	if env.Style != "" {
		cfg.Render.Stylesheet = env.Style
	}
	if env.Highlight != "" {
		cfg.Render.Highlight = env.Highlight
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Addr != "" {
		cfg.Serve.Addr = env.Addr
	}
}

// loadSiteConfig resolves config file precedence: flag > MDPRESS_CONFIG >
// mdpress.yaml in standard locations > defaults. A config named on the
// command line or in the environment must exist; the implicit default may
// be absent.
func loadSiteConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultConfigName)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
