package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for page assembly.
var (
	ErrPageTemplate = errors.New("page template parsing failed")
	ErrPageRender   = errors.New("page template rendering failed")
)

// PageData fills the post page template. Content and the script bodies
// are typed so html/template trusts them; everything else is escaped.
type PageData struct {
	Lang        string
	Title       string
	Styles      template.CSS
	Content     template.HTML
	DateMachine string   // machine-readable date for <time datetime>
	DateDisplay string   // human-readable date
	Topics      []string // normalized topic names

	// Engine script URLs; empty omits the tag.
	MathJaxURL  string
	MermaidURL  string
	GraphvizURL string

	// Inline script bodies; empty omits the block.
	TypesetScript template.JS
	RunnerScript  template.JS
}

// IndexData fills the index and topic page template.
type IndexData struct {
	Lang    string
	Title   string
	Styles  template.CSS
	Heading string
	Intro   string
	Posts   []IndexEntry
}

// IndexEntry is one post row on an index page.
type IndexEntry struct {
	URL         string
	Title       string
	DateMachine string
	DateDisplay string
	Topics      []TopicLink
}

// TopicLink is a topic tag shown next to a post row.
type TopicLink struct {
	URL  string
	Name string
}

// PageBuilder defines the contract for assembling a full HTML page from
// template data.
type PageBuilder interface {
	BuildPage(ctx context.Context, data any) (string, error)
}

// TemplatePageBuilder executes a parsed html/template page. One builder
// per template; the same type serves the post and index templates.
type TemplatePageBuilder struct {
	tmpl *template.Template
}

// Compile-time interface check.
var _ PageBuilder = (*TemplatePageBuilder)(nil)

// NewTemplatePageBuilder parses template content into a builder.
func NewTemplatePageBuilder(name, tmplContent string) (*TemplatePageBuilder, error) {
	tmpl, err := template.New(name).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}
	return &TemplatePageBuilder{tmpl: tmpl}, nil
}

// BuildPage renders the template with the given data.
func (b *TemplatePageBuilder) BuildPage(ctx context.Context, data any) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
