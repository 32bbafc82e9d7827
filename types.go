package mdpress

import (
	"time"
)

// Default engine script URLs, pinned to the major versions the typeset
// bootstrap knows how to drive. Override with WithEngines for self-hosted
// copies or newer pins.
const (
	DefaultMathJaxURL  = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-chtml.js"
	DefaultMermaidURL  = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
	DefaultGraphvizURL = "https://cdn.jsdelivr.net/npm/@viz-js/viz@3/lib/viz-standalone.js"
)

// defaultLang is the page language when none is configured.
const defaultLang = "en"

// Input contains rendering parameters for a single post.
type Input struct {
	Markdown  string // Markdown content with optional frontmatter (required)
	Title     string // Fallback title when frontmatter has no name (optional)
	CSS       string // Custom CSS appended after the base stylesheet (optional)
	Untrusted bool   // Sanitize the generated HTML before page assembly
	BodyOnly  bool   // Return the article fragment without the page shell
}

// Frontmatter holds the parsed post header.
// Date is zero when the header has no date or the value matched no
// accepted layout.
type Frontmatter struct {
	Name   string
	Date   time.Time
	Topics []string
}

// Features reports which deferred rendering engines the post uses.
type Features struct {
	Math     bool
	Mermaid  bool
	Graphviz bool
	Runnable bool
}

// Snippet is a runnable code block extracted from a post, in source order.
type Snippet struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Index    int    `json:"index"`
}

// Result contains the rendered post.
type Result struct {
	HTML        string // Complete page, or the fragment when Input.BodyOnly
	Body        string // Article fragment before page assembly
	Frontmatter Frontmatter
	Features    Features
	Snippets    []Snippet
}

// Engines holds the script URLs injected for deferred rendering. An empty
// URL omits the corresponding tag even when the post uses the feature.
type Engines struct {
	MathJax  string
	Mermaid  string
	Graphviz string
}

// Message types for the snippet execution protocol.
const (
	MessageExecute = "execute"
	MessageOutput  = "output"
	MessageError   = "error"
	MessageDone    = "done"
)

// Message is one frame of the snippet execution protocol. The same frames
// flow between the in-page worker and its host, and between Runner and the
// exec command. Code is set on execute frames, Data on output frames, and
// Text on error frames; done frames carry no payload.
type Message struct {
	Type string `json:"type"`
	Code string `json:"code,omitempty"`
	Data string `json:"data,omitempty"`
	Text string `json:"message,omitempty"`
}

// ExecResult summarizes one snippet execution.
type ExecResult struct {
	// Messages holds the emitted frames in order: zero or more output and
	// error frames followed by exactly one done frame.
	Messages []Message

	// Duration is the wall time of the evaluation itself.
	Duration time.Duration
}

// Outputs returns the data of all output frames in order.
func (r *ExecResult) Outputs() []string {
	var outputs []string
	for _, m := range r.Messages {
		if m.Type == MessageOutput {
			outputs = append(outputs, m.Data)
		}
	}
	return outputs
}

// Errors returns the text of all error frames in order.
func (r *ExecResult) Errors() []string {
	var errs []string
	for _, m := range r.Messages {
		if m.Type == MessageError {
			errs = append(errs, m.Text)
		}
	}
	return errs
}

// Failed reports whether the execution emitted any error frame.
func (r *ExecResult) Failed() bool {
	for _, m := range r.Messages {
		if m.Type == MessageError {
			return true
		}
	}
	return false
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout       time.Duration
	styleInput    string
	resolvedStyle string
	chromaStyle   string
	hardWraps     bool
	toc           bool
	staticTypeset bool
	assetPath     string
	lang          string
	dateFormat    string
	engines       Engines
}

// defaultTimeout is used when no timeout is specified. It bounds browser
// work (static typesetting), not plain rendering.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser operation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithStyle sets the page stylesheet. Accepts a built-in style name
// ("blog"), a path to a CSS file, or raw CSS content.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = style
	}
}

// WithChromaStyle sets the syntax highlighting color scheme.
// Unknown names fall back to the chroma default scheme.
func WithChromaStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.chromaStyle = name
	}
}

// WithHardWraps renders single newlines as <br> tags, matching the
// behavior of most blog editors.
func WithHardWraps() Option {
	return func(r *Renderer) {
		r.cfg.hardWraps = true
	}
}

// WithTOC prepends a table of contents when the post has enough headings.
func WithTOC() Option {
	return func(r *Renderer) {
		r.cfg.toc = true
	}
}

// WithStaticTypeset renders math and diagram blocks at build time using
// headless Chrome, so pages need no engine scripts in the reader's browser.
func WithStaticTypeset() Option {
	return func(r *Renderer) {
		r.cfg.staticTypeset = true
	}
}

// WithAssetPath loads styles, templates, and scripts from the given
// directory, with fallback to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader (e.g. S3, database).
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.publicAssetLoader = loader
	}
}

// WithLogger sets the logger for advisory diagnostics.
func WithLogger(logger Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEngines overrides the deferred rendering engine URLs.
func WithEngines(e Engines) Option {
	return func(r *Renderer) {
		r.cfg.engines = e
	}
}

// WithLang sets the page language attribute.
func WithLang(lang string) Option {
	return func(r *Renderer) {
		if lang != "" {
			r.cfg.lang = lang
		}
	}
}

// WithDateFormat sets the display format for post dates, using the
// MMMM/MM/M, DD/D, YYYY/YY tokens (e.g. "MMMM D, YYYY").
func WithDateFormat(format string) Option {
	return func(r *Renderer) {
		if format != "" {
			r.cfg.dateFormat = format
		}
	}
}
