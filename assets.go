package mdpress

import (
	"fmt"

	"github.com/alnah/go-mdpress/internal/assets"
)

// Built-in asset names.
const (
	// DefaultStyle is the built-in blog stylesheet.
	DefaultStyle = assets.DefaultStyleName

	// PageTemplate wraps a single post.
	PageTemplate = assets.PageTemplateName

	// IndexTemplate renders the front page and topic pages.
	IndexTemplate = assets.IndexTemplateName
)

// AssetLoader defines the contract for loading CSS styles, HTML templates,
// and JavaScript assets. Implementations may load from filesystem, embedded
// assets, S3, database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadScript loads a JavaScript asset by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css
//   - templates/{name}.html
//   - scripts/{name}.js
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable
// directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	if basePath == "" {
		return assets.NewEmbeddedLoader(), nil
	}
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}
