package assets

// Built-in asset names. These always resolve through the embedded loader.
const (
	// DefaultStyleName is the built-in blog stylesheet.
	DefaultStyleName = "blog"

	// PageTemplateName is the template wrapping a single post.
	PageTemplateName = "page"

	// IndexTemplateName is the template for the front page and topic pages.
	IndexTemplateName = "index"

	// TypesetScriptName is the deferred typesetting bootstrap.
	TypesetScriptName = "typeset"

	// RunnerScriptName is the in-page sandboxed execution glue.
	RunnerScriptName = "runner"
)

// AssetLoader defines the contract for loading styles, templates, and scripts.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadScript loads a browser script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadScript(name string) (string, error)
}
