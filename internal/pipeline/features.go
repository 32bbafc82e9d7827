package pipeline

import "strings"

// Features records which client-side engines a rendered post needs.
// Page assembly uses it to emit engine script tags only when something on
// the page will use them.
type Features struct {
	Math     bool
	Mermaid  bool
	Graphviz bool
	Runnable bool
}

// NeedsTypeset reports whether the typeset script and at least one engine
// tag belong on the page.
func (f Features) NeedsTypeset() bool {
	return f.Math || f.Mermaid || f.Graphviz
}

// DetectFeatures scans a rendered fragment for engine hooks. Detection is
// string-based on the class attributes the pipeline itself emits, so it is
// cheap; a post that hand-writes those exact attributes in raw HTML gets
// the engines too, which is harmless.
func DetectFeatures(htmlContent string) Features {
	return Features{
		Math:     strings.Contains(htmlContent, `class="math`),
		Mermaid:  strings.Contains(htmlContent, `class="`+MermaidClass+`"`),
		Graphviz: strings.Contains(htmlContent, `class="`+GraphvizClass+`"`),
		Runnable: strings.Contains(htmlContent, `class="`+RunnableClass+`"`),
	}
}
