package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that could escape the asset directories.
// Stylesheet and template names are bare identifiers like "blog": no path
// separators and no dots, so neither traversal nor an extension swap is
// possible when the loader appends ".css" or ".html".
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
