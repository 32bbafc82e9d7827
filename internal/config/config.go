// Package config loads and validates site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpress/internal/fileutil"
	"github.com/alnah/go-mdpress/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// DefaultConfigName is the base name searched when no --config is given.
const DefaultConfigName = "mdpress"

// Field limits. Site titles and author names stay generous; URL and path
// limits follow common browser and filesystem bounds.
const (
	MaxTitleLength   = 200
	MaxAuthorLength  = 100
	MaxLangLength    = 35 // longest registered BCP 47 tag
	MaxURLLength     = 2048
	MaxPathLength    = 4096
	MaxStyleLength   = 100
	MaxFormatLength  = 50
	MaxAddrLength    = 256
	MaxTimeoutSec    = 600
	MaxRunTimeoutSec = 120
)

// Config holds all configuration for building and serving a site.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Render  RenderConfig  `yaml:"render"`
	Engines EnginesConfig `yaml:"engines"`
	Runner  RunnerConfig  `yaml:"runner"`
	Serve   ServeConfig   `yaml:"serve"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// SiteConfig describes the site itself.
type SiteConfig struct {
	Title      string `yaml:"title"`      // Shown on index pages and in page titles
	Author     string `yaml:"author"`     // Optional
	Lang       string `yaml:"lang"`       // html lang attribute (default: "en")
	DateFormat string `yaml:"dateFormat"` // Display format or preset (default: long form)
}

// ContentConfig locates source and output directories.
type ContentConfig struct {
	Dir       string `yaml:"dir"`       // Markdown sources (default: "content")
	StaticDir string `yaml:"staticDir"` // Copied verbatim into output (default: "static")
	OutputDir string `yaml:"outputDir"` // Build target (default: "public")
}

// RenderConfig controls page rendering.
type RenderConfig struct {
	Stylesheet     string `yaml:"stylesheet"`     // Page style asset name (default: "blog")
	Highlight      string `yaml:"highlight"`      // Chroma style for code fences (default: "github")
	HardWraps      bool   `yaml:"hardWraps"`      // Render single newlines as <br>
	TOC            bool   `yaml:"toc"`            // Insert a numbered table of contents
	Untrusted      bool   `yaml:"untrusted"`      // Sanitize rendered HTML
	StaticTypeset  bool   `yaml:"staticTypeset"`  // Typeset in headless Chrome at build time
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // Per-page render timeout (default: 30)
}

// EnginesConfig overrides the client-side engine script URLs.
// Empty fields use the bundled CDN defaults.
type EnginesConfig struct {
	MathJax  string `yaml:"mathjax"`
	Mermaid  string `yaml:"mermaid"`
	Graphviz string `yaml:"graphviz"`
}

// RunnerConfig controls sandboxed snippet execution.
type RunnerConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"` // Per-snippet execution timeout (default: 10)
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr"` // Listen address (default: ":8080")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with their defaults. Loaded configs
// pass through this so partial files behave predictably.
func (c *Config) ApplyDefaults() {
	if c.Site.Lang == "" {
		c.Site.Lang = "en"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "content"
	}
	if c.Content.StaticDir == "" {
		c.Content.StaticDir = "static"
	}
	if c.Content.OutputDir == "" {
		c.Content.OutputDir = "public"
	}
	if c.Render.Stylesheet == "" {
		c.Render.Stylesheet = "blog"
	}
	if c.Render.Highlight == "" {
		c.Render.Highlight = "github"
	}
	if c.Render.TimeoutSeconds == 0 {
		c.Render.TimeoutSeconds = 30
	}
	if c.Runner.TimeoutSeconds == 0 {
		c.Runner.TimeoutSeconds = 10
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually (e.g., library users).
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.author", c.Site.Author, MaxAuthorLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"site.dateFormat", c.Site.DateFormat, MaxFormatLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"content.staticDir", c.Content.StaticDir, MaxPathLength},
		{"content.outputDir", c.Content.OutputDir, MaxPathLength},
		{"render.stylesheet", c.Render.Stylesheet, MaxStyleLength},
		{"render.highlight", c.Render.Highlight, MaxStyleLength},
		{"engines.mathjax", c.Engines.MathJax, MaxURLLength},
		{"engines.mermaid", c.Engines.Mermaid, MaxURLLength},
		{"engines.graphviz", c.Engines.Graphviz, MaxURLLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	urls := []struct {
		field string
		value string
	}{
		{"engines.mathjax", c.Engines.MathJax},
		{"engines.mermaid", c.Engines.Mermaid},
		{"engines.graphviz", c.Engines.Graphviz},
	}
	for _, u := range urls {
		// Engine scripts may also be served from the site itself, so
		// root-relative paths are accepted alongside http(s) URLs.
		if u.value == "" || fileutil.IsURL(u.value) || strings.HasPrefix(u.value, "/") {
			continue
		}
		return fmt.Errorf("%w: %s must be an http(s) URL or root-relative path, got %q",
			ErrInvalidField, u.field, u.value)
	}

	if c.Render.TimeoutSeconds < 0 || c.Render.TimeoutSeconds > MaxTimeoutSec {
		return fmt.Errorf("%w: render.timeoutSeconds must be between 0 and %d, got %d",
			ErrInvalidField, MaxTimeoutSec, c.Render.TimeoutSeconds)
	}
	if c.Runner.TimeoutSeconds < 0 || c.Runner.TimeoutSeconds > MaxRunTimeoutSec {
		return fmt.Errorf("%w: runner.timeoutSeconds must be between 0 and %d, got %d",
			ErrInvalidField, MaxRunTimeoutSec, c.Runner.TimeoutSeconds)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the locations resolveConfigPath would try for a
// config name, used for hints when nothing is found.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "mdpress", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/mdpress/
func resolveConfigPath(name string) (string, error) {
	candidates := SearchPaths(name)
	for _, path := range candidates {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}
