package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestToHTMLBasics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		markdown     string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "heading gets an anchor id",
			markdown:     "## Getting Started",
			wantContains: []string{"<h2", `id="getting-started"`, "Getting Started</h2>"},
		},
		{
			name:         "gfm table",
			markdown:     "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "gfm strikethrough",
			markdown:     "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "footnote",
			markdown:     "text[^1]\n\n[^1]: the note\n",
			wantContains: []string{"fn:1", "the note"},
		},
		{
			name:         "inline math becomes math span",
			markdown:     `Euler: $e^{i\pi} = -1$`,
			wantContains: []string{`class="math`},
		},
		{
			name:         "display math becomes math block",
			markdown:     "$$\nx^2\n$$\n",
			wantContains: []string{`class="math`},
		},
		{
			name:         "output is a fragment",
			markdown:     "plain paragraph",
			wantContains: []string{"<p>plain paragraph</p>"},
			wantNot:      []string{"<html", "<body", "<!DOCTYPE"},
		},
		{
			name:         "soft wraps by default",
			markdown:     "line one\nline two",
			wantNot:      []string{"<br"},
			wantContains: []string{"line one\nline two"},
		},
	}

	converter := NewGoldmarkConverter(ConverterConfig{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q:\n%s", not, got)
				}
			}
		})
	}
}

func TestToHTMLFenceRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		markdown     string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "mermaid fence",
			markdown:     "```mermaid\ngraph TD;\nA-->B;\n```\n",
			wantContains: []string{`<div class="mermaid">`, "graph TD;", "A--&gt;B;", "</div>"},
			wantNot:      []string{"chroma", "<code"},
		},
		{
			name:         "dot fence routes to graphviz",
			markdown:     "```dot\ndigraph { a -> b }\n```\n",
			wantContains: []string{`<div class="graphviz">`, "digraph"},
		},
		{
			name:         "graphviz fence",
			markdown:     "```graphviz\ndigraph { a -> b }\n```\n",
			wantContains: []string{`<div class="graphviz">`},
		},
		{
			name:     "runjs fence",
			markdown: "```runjs\nconsole.log(\"hi\");\n```\n",
			wantContains: []string{
				`<div class="runnable">`,
				`<code class="language-javascript">`,
				"console.log(&quot;hi&quot;);",
			},
		},
		{
			name:         "fence language is case-insensitive",
			markdown:     "```Mermaid\ngraph TD;\n```\n",
			wantContains: []string{`<div class="mermaid">`},
		},
		{
			name:         "go fence gets chroma classes",
			markdown:     "```go\nfunc main() {}\n```\n",
			wantContains: []string{"chroma", "func"},
			wantNot:      []string{`<div class="runnable">`},
		},
		{
			name:         "unknown language falls back to plain code",
			markdown:     "```zzznotalang\nsome text\n```\n",
			wantContains: []string{`<pre><code class="language-zzznotalang">`, "some text"},
		},
		{
			name:         "no language falls back to plain code",
			markdown:     "```\nplain\n```\n",
			wantContains: []string{"<pre><code>", "plain"},
		},
	}

	converter := NewGoldmarkConverter(ConverterConfig{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q:\n%s", not, got)
				}
			}
		})
	}
}

// Code fences must come through with their text intact, modulo the
// HTML escaping the browser undoes.
func TestToHTMLPreservesCodeText(t *testing.T) {
	t.Parallel()

	code := `const x = {a: 1, b: "two < three"};` + "\n" + `if (x.a < 2 && x.b) { console.log(x); }` + "\n"
	markdown := "```runjs\n" + code + "```\n"

	got, err := NewGoldmarkConverter(ConverterConfig{}).ToHTML(context.Background(), markdown)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	unescaped := strings.NewReplacer(
		"&quot;", `"`, "&lt;", "<", "&gt;", ">", "&amp;", "&", "&#34;", `"`, "&#39;", "'",
	).Replace(got)

	if !strings.Contains(unescaped, code) {
		t.Errorf("code text not preserved through rendering:\n%s", got)
	}
}

func TestToHTMLHardWraps(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(ConverterConfig{HardWraps: true})
	got, err := converter.ToHTML(context.Background(), "line one\nline two")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, "<br") {
		t.Errorf("hard wraps should insert <br>, got:\n%s", got)
	}
}

func TestToHTMLCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(ConverterConfig{}).ToHTML(ctx, "# Test")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
