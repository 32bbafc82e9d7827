// Package assets provides the CSS, HTML templates, and browser scripts
// that turn a rendered markdown fragment into a publishable page.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in blog style, page templates, and
// the client scripts for deferred typesetting and sandboxed execution,
// all embedded at compile time.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the primary loader used by the renderer. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the
// asset is not found. This enables overriding specific assets while
// keeping defaults.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page styles (e.g., blog.css)
//	├── templates/
//	│   └── {name}.html          # page shells (e.g., page.html, index.html)
//	└── scripts/
//	    └── {name}.js            # browser glue (e.g., typeset.js, runner.js)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
