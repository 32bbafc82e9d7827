package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates goldmark failed to convert the markdown.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultChromaStyle is the chroma style used when none is configured.
const DefaultChromaStyle = "github"

// HTMLConverter defines the contract for Markdown to HTML conversion.
// The output is a body fragment; page assembly wraps it separately.
type HTMLConverter interface {
	ToHTML(ctx context.Context, mdContent string) (string, error)
}

// ConverterConfig tunes the goldmark setup.
type ConverterConfig struct {
	ChromaStyle string // chroma style name, registered classes only
	HardWraps   bool   // render single newlines as <br>
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark
// with GFM, footnotes, math spans, auto heading IDs, and chroma-highlighted
// code fences emitting CSS classes. Special fences (mermaid, graphviz,
// runjs) are routed by FenceWrapper instead of being highlighted.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter creates a converter with the given configuration.
func NewGoldmarkConverter(cfg ConverterConfig) *GoldmarkConverter {
	if cfg.ChromaStyle == "" {
		cfg.ChromaStyle = DefaultChromaStyle
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if cfg.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			mathjax.MathJax,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.ChromaStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				highlighting.WithWrapperRenderer(FenceWrapper()),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)

	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Respects context cancellation; goldmark itself is not context-aware, so
// conversion runs in a goroutine and the result channel is buffered to
// avoid leaking it on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, mdContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	resultCh := make(chan result, 1)
	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(mdContent), &buf); err != nil {
			resultCh <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		resultCh <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		return res.html, res.err
	}
}
