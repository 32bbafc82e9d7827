package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightCSS renders the chroma stylesheet for a style name, scoped to
// the .chroma class the converter's formatter emits. Unknown names fall
// back to chroma's default style, matching the converter's own lookup.
func HighlightCSS(styleName string) (string, error) {
	if styleName == "" {
		styleName = DefaultChromaStyle
	}

	style := styles.Get(styleName)
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("highlight stylesheet: %w", err)
	}
	return buf.String(), nil
}
