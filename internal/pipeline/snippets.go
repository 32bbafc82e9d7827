package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Snippet is a runnable code block extracted from a post, in document
// order. Language is what the sandbox executes, not the fence token.
type Snippet struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Index    int    `json:"index"`
}

// Goldmark parsers are safe for concurrent use; one is enough.
var snippetParser = goldmark.DefaultParser()

// ExtractSnippets parses markdown and returns its runnable code blocks.
// Fenced code blocks are core CommonMark, so the full converter pipeline
// is not needed here.
func ExtractSnippets(source string) []Snippet {
	src := []byte(source)
	root := snippetParser.Parse(text.NewReader(src))

	var snippets []Snippet
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := strings.ToLower(strings.TrimSpace(string(fence.Language(src))))
		if lang != runnableLang {
			return ast.WalkContinue, nil
		}
		snippets = append(snippets, Snippet{
			Language: "javascript",
			Code:     fenceText(fence, src),
			Index:    len(snippets),
		})
		return ast.WalkContinue, nil
	})

	return snippets
}

// fenceText joins the raw lines of a fenced code block.
func fenceText(fence *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
