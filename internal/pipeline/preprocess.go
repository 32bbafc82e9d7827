package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// MarkdownPreprocessor defines the contract for source normalization
// before frontmatter extraction and HTML conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, source string) string
}

// PostPreprocessor normalizes raw post source: strips a leading UTF-8 BOM
// (which would hide the opening frontmatter delimiter), converts CRLF and
// bare CR line endings to LF, and compresses runs of blank lines outside
// fenced code blocks to a single blank line.
type PostPreprocessor struct{}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*PostPreprocessor)(nil)

// NewPostPreprocessor creates a PostPreprocessor.
func NewPostPreprocessor() *PostPreprocessor {
	return &PostPreprocessor{}
}

const utf8BOM = "\uFEFF"

// crlfOrCR matches Windows (CRLF) and old Mac (CR) line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// PreprocessMarkdown applies all normalizations in order.
// Returns the input unchanged if the context is already canceled.
func (p *PostPreprocessor) PreprocessMarkdown(ctx context.Context, source string) string {
	if ctx.Err() != nil {
		return source
	}

	result := strings.TrimPrefix(source, utf8BOM)
	result = normalizeLineEndings(result)
	result = compressBlankLines(result)

	return result
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	return crlfOrCR.ReplaceAllString(s, "\n")
}

// compressBlankLines reduces each run of consecutive blank lines to a
// single blank line. Lines inside fenced code blocks are kept verbatim so
// code content survives the pipeline untouched.
func compressBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	fenceMarker := ""
	blanks := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inFence {
			out = append(out, line)
			if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
			}
			continue
		}

		if marker, ok := fenceDelimiter(trimmed); ok {
			inFence = true
			fenceMarker = marker
			blanks = 0
			out = append(out, line)
			continue
		}

		if trimmed == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			out = append(out, line)
			continue
		}

		blanks = 0
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// fenceDelimiter reports whether a trimmed line opens a fenced code block,
// returning the marker to match against the closing fence. Tracking the
// marker keeps backtick fences inside tilde fences (and vice versa) intact.
func fenceDelimiter(trimmed string) (string, bool) {
	if strings.HasPrefix(trimmed, "```") {
		return "```", true
	}
	if strings.HasPrefix(trimmed, "~~~") {
		return "~~~", true
	}
	return "", false
}
