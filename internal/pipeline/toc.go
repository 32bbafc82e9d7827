package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// TOCConfig controls table-of-contents generation.
type TOCConfig struct {
	Title       string // heading above the list; empty for none
	MinDepth    int    // smallest heading level included (default 2, skips the post title's H1)
	MaxDepth    int    // largest heading level included (default 3)
	MinHeadings int    // below this many headings no TOC is built (default 3)
}

// DefaultTOCConfig returns the settings used when TOC generation is
// enabled without further tuning.
func DefaultTOCConfig() TOCConfig {
	return TOCConfig{Title: "Contents", MinDepth: 2, MaxDepth: 3, MinHeadings: 3}
}

// headingInfo is a heading extracted from rendered HTML.
type headingInfo struct {
	Level int
	ID    string
	Text  string
}

// headingPattern matches h1-h6 tags carrying an id attribute.
// Captures: 1=level, 2=id, 3=inner HTML.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// BuildTOC extracts headings from a rendered fragment and returns a
// <nav class="toc"> block with a nested list linking to them, or "" when
// the fragment has fewer headings than cfg.MinHeadings. Auto heading IDs
// from the converter provide the anchors; headings without IDs are
// skipped.
func BuildTOC(htmlContent string, cfg TOCConfig) string {
	if cfg.MinDepth <= 0 {
		cfg.MinDepth = 2
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	if cfg.MinHeadings <= 0 {
		cfg.MinHeadings = 3
	}

	headings := extractHeadings(htmlContent, cfg.MinDepth, cfg.MaxDepth)
	if len(headings) < cfg.MinHeadings {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc">`)
	if cfg.Title != "" {
		b.WriteString(`<h2 class="toc-title">`)
		b.WriteString(html.EscapeString(cfg.Title))
		b.WriteString(`</h2>`)
	}
	b.WriteString(renderTOCList(headings))
	b.WriteString(`</nav>`)
	return b.String()
}

// extractHeadings returns headings between minDepth and maxDepth in
// document order.
func extractHeadings(htmlContent string, minDepth, maxDepth int) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []headingInfo
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// renderTOCList builds nested <ul> markup. Depths are normalized so the
// first heading sits at the top level, and jumps over levels are clamped
// to one step so a H2 followed by a H4 still nests one level down. Each
// <li> stays open until its subtree is written, keeping the list valid
// HTML rather than placing child lists as siblings.
func renderTOCList(headings []headingInfo) string {
	var b strings.Builder

	depth := 0
	minSeen := 0
	last := 0

	for _, h := range headings {
		if minSeen == 0 {
			minSeen = h.Level
		}
		d := h.Level - minSeen + 1
		if d < 1 {
			d = 1
		}
		if last > 0 && d > last+1 {
			d = last + 1
		}

		switch {
		case depth == 0:
			b.WriteString("<ul>")
			depth = 1
		case d > depth:
			// Clamping guarantees single-step descent.
			b.WriteString("<ul>")
			depth = d
		case d == depth:
			b.WriteString("</li>")
		default:
			b.WriteString("</li>")
			for depth > d {
				b.WriteString("</ul></li>")
				depth--
			}
		}

		b.WriteString(`<li><a href="#`)
		b.WriteString(html.EscapeString(h.ID))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(h.Text))
		b.WriteString(`</a>`)

		last = d
	}

	if depth > 0 {
		b.WriteString("</li>")
		for depth > 1 {
			b.WriteString("</ul></li>")
			depth--
		}
		b.WriteString("</ul>")
	}

	return b.String()
}

// stripHTMLTags removes tags from heading markup and decodes entities so
// the text is not double-encoded when escaped for the TOC link.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
