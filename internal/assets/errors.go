package assets

import "errors"

// Not-found errors are the only ones the resolver falls back on; the rest
// abort the load.
var (
	// ErrStyleNotFound indicates the named stylesheet does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound indicates the named page template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrScriptNotFound indicates the named browser script does not exist.
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidAssetName indicates a name with path separators, dots, or
	// other characters that could escape the asset directories.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the override directory is missing or
	// not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead wraps I/O failures while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates a resolved path escaped the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
