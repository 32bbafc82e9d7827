package pipeline

import (
	"html"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/util"
)

// CSS classes produced by fence routing. The client-side scripts and the
// feature detector key off these.
const (
	MermaidClass  = "mermaid"
	GraphvizClass = "graphviz"
	RunnableClass = "runnable"
)

// Fence language tokens routed to client-side engines.
const (
	mermaidLang  = "mermaid"
	graphvizLang = "graphviz"
	dotLang      = "dot"
	runnableLang = "runjs"
)

// FenceWrapper returns a wrapper renderer that routes special code fences:
// mermaid and graphviz sources go into bare divs their engines pick up,
// runnable blocks into a container the runner script hydrates with a Run
// button. Blocks chroma highlighted pass through untouched; languages
// chroma does not know fall back to plain pre/code with a language class.
func FenceWrapper() func(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	return func(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
		if c.Highlighted() {
			return
		}

		switch lang := fenceLanguage(c); lang {
		case mermaidLang:
			writeWrap(w, entering, `<div class="`+MermaidClass+`">`, "</div>\n")
		case dotLang, graphvizLang:
			writeWrap(w, entering, `<div class="`+GraphvizClass+`">`, "</div>\n")
		case runnableLang:
			writeWrap(w, entering,
				`<div class="`+RunnableClass+`"><pre><code class="language-javascript">`,
				"</code></pre></div>\n")
		case "":
			writeWrap(w, entering, "<pre><code>", "</code></pre>\n")
		default:
			writeWrap(w, entering,
				`<pre><code class="language-`+html.EscapeString(lang)+`">`,
				"</code></pre>\n")
		}
	}
}

// fenceLanguage extracts the lower-cased language token, or "" when the
// fence has no info string.
func fenceLanguage(c highlighting.CodeBlockContext) string {
	langBytes, ok := c.Language()
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(string(langBytes)))
}

func writeWrap(w util.BufWriter, entering bool, openTag, closeTag string) {
	if entering {
		_, _ = w.WriteString(openTag)
		return
	}
	_, _ = w.WriteString(closeTag)
}
