package mdpress

import (
	"errors"

	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrEmptyCode      = errors.New("code cannot be empty")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrTypeset        = errors.New("static typesetting failed")
	ErrExecution      = errors.New("snippet execution failed")
	ErrPoolClosed     = errors.New("renderer pool is closed")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Pipeline and asset errors surface through NewRenderer and Render wrapped
// with context. The aliases below share the internal sentinel values so
// callers can match them with errors.Is without importing internal packages.
var (
	ErrHTMLConversion   = pipeline.ErrHTMLConversion
	ErrPageTemplate     = pipeline.ErrPageTemplate
	ErrPageRender       = pipeline.ErrPageRender
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrScriptNotFound   = assets.ErrScriptNotFound
)
