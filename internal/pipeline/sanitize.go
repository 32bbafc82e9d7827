package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer defines the contract for sanitizing rendered fragments of
// untrusted posts.
type HTMLSanitizer interface {
	Sanitize(htmlContent string) string
}

// UGCSanitizer strips scripts, event handlers, and unknown markup while
// keeping what the pipeline legitimately emits: chroma token spans, engine
// divs, math spans, heading anchors, footnote links, and task list
// checkboxes. Sanitization is unconditional; there is no cancel path that
// could let unsanitized content through.
type UGCSanitizer struct {
	policy *bluemonday.Policy
}

// Compile-time interface check.
var _ HTMLSanitizer = (*UGCSanitizer)(nil)

var checkboxType = regexp.MustCompile(`^checkbox$`)

// NewUGCSanitizer creates a sanitizer based on bluemonday's UGC policy
// extended with the attributes this pipeline's own output depends on.
func NewUGCSanitizer() *UGCSanitizer {
	p := bluemonday.UGCPolicy()

	// Chroma tokens, engine divs, math spans, footnote refs.
	p.AllowAttrs("class").OnElements("code", "span", "pre", "div", "a", "sup")

	// Heading anchors and footnote targets.
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "sup", "li", "a", "div")

	// GFM task lists render disabled checkboxes.
	p.AllowElements("input")
	p.AllowAttrs("type").Matching(checkboxType).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	return &UGCSanitizer{policy: p}
}

// Sanitize returns the fragment with disallowed markup removed.
func (s *UGCSanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
