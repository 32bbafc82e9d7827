package pipeline

import (
	"strings"
	"testing"
)

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "inserts before closing head",
			html: "<html><head><title>t</title></head><body>x</body></html>",
			css:  "body { color: red; }",
			want: "<style>body { color: red; }</style></head>",
		},
		{
			name: "falls back to after body tag",
			html: "<html><body class=\"x\">content</body></html>",
			css:  "p {}",
			want: "<body class=\"x\"><style>p {}</style>",
		},
		{
			name: "prepends when no head or body",
			html: "<p>bare fragment</p>",
			css:  "p {}",
			want: "<style>p {}</style><p>bare fragment</p>",
		},
		{
			// only </ can close the enclosing tag; opening tags are inert
			// inside a style element and stay as written
			name: "escapes closing sequences",
			html: "<html><head></head><body></body></html>",
			css:  "p { content: '</style><script>evil()'; }",
			want: `p { content: '<\/style><script>evil()'; }`,
		},
	}

	injector := &CSSInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(tt.html, tt.css)
			if !strings.Contains(got, tt.want) {
				t.Errorf("InjectCSS() missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestInjectCSSEmpty(t *testing.T) {
	t.Parallel()

	html := "<html><head></head></html>"
	if got := (&CSSInjection{}).InjectCSS(html, ""); got != html {
		t.Errorf("empty CSS should return input unchanged, got %q", got)
	}
}

func TestInjectScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		html   string
		script string
		want   string
	}{
		{
			name:   "inserts before closing body",
			html:   "<html><body><p>x</p></body></html>",
			script: "reload();",
			want:   "<p>x</p><script>reload();</script></body>",
		},
		{
			name:   "appends when no body",
			html:   "<p>fragment</p>",
			script: "x();",
			want:   "<p>fragment</p><script>x();</script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := InjectScript(tt.html, tt.script)
			if !strings.Contains(got, tt.want) {
				t.Errorf("InjectScript() missing %q:\n%s", tt.want, got)
			}
		})
	}

	t.Run("empty script unchanged", func(t *testing.T) {
		t.Parallel()

		html := "<html><body></body></html>"
		if got := InjectScript(html, ""); got != html {
			t.Errorf("empty script should return input unchanged, got %q", got)
		}
	})
}
