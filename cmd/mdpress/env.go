package main

import (
	"io"
	"os"
	"time"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/assets"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, asset loading, and logging.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader assets.AssetLoader
	Logger      mdpress.Logger
}

// DefaultEnv returns the production environment with embedded assets.
// The logger starts as a no-op and is replaced once flags are parsed.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		Logger:      mdpress.NopLogger{},
	}
}
