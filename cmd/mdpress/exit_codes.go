package main

import (
	"errors"
	"os"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
	"github.com/alnah/go-mdpress/internal/frontmatter"
)

// Exit codes for the mdpress CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpress.ErrBrowserConnect) ||
		errors.Is(err, mdpress.ErrPageCreate) ||
		errors.Is(err, mdpress.ErrPageLoad) ||
		errors.Is(err, mdpress.ErrTypeset) ||
		errors.Is(err, mdpress.ErrExecution) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoContent) ||
		errors.Is(err, ErrReadPost) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrSiteExists) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, frontmatter.ErrMalformed) ||
		errors.Is(err, mdpress.ErrEmptyMarkdown) ||
		errors.Is(err, mdpress.ErrEmptyCode) ||
		errors.Is(err, mdpress.ErrStyleNotFound) ||
		errors.Is(err, mdpress.ErrTemplateNotFound) ||
		errors.Is(err, mdpress.ErrScriptNotFound) ||
		errors.Is(err, mdpress.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
