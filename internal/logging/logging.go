// Package logging builds the CLI logger on top of go-logger. The root
// package defines the Logger contract it consumes; glog loggers satisfy
// it structurally, so this package stays free of upward imports.
package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Config captures the logging options exposed on the command line.
type Config struct {
	Level  string // trace, debug, info, warn, error (empty = library default)
	Format string // console, pretty, json (default: console)
}

// New constructs the logger. Format defaults to console output since the
// primary consumer is a person running a build.
func New(cfg Config) (*glog.BaseLogger, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	return glog.NewLogger(options...), nil
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}
