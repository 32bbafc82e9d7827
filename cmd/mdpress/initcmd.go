package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdpress/internal/fileutil"
)

// ErrSiteExists indicates init would overwrite an existing site.
var ErrSiteExists = errors.New("site files already exist")

// starterConfig is written as mdpress.yaml. Every value shown is the
// default, so the file works as documentation.
const starterConfig = `site:
  title: My Blog
  # author: ""
  lang: en
  # dateFormat: "MMMM D, YYYY"

content:
  dir: content
  staticDir: static
  outputDir: public

render:
  stylesheet: blog
  highlight: github
  # toc: true
  # untrusted: true
  # staticTypeset: true

# engines:
#   mathjax: /vendor/tex-chtml.js
#   mermaid: /vendor/mermaid.min.js
#   graphviz: /vendor/viz-standalone.js

serve:
  addr: ":8080"
`

// starterPost exercises every rendering feature so a fresh site shows
// what the tool does.
const starterPost = `---
name: Welcome to mdpress
date: %s
topics: [meta]
---

## Writing

Posts are plain Markdown with a frontmatter header. GFM tables,
footnotes, and ~~strikethrough~~ work out of the box.

## Code

` + "```go" + `
func main() {
	fmt.Println("highlighted with chroma")
}
` + "```" + `

## Math

Inline math like $e^{i\pi} + 1 = 0$ and display math:

$$
\int_0^\infty e^{-x^2}\,dx = \frac{\sqrt{\pi}}{2}
$$

## Diagrams

` + "```mermaid" + `
graph LR
    Write --> Build --> Publish
` + "```" + `

## Runnable snippets

Fences tagged runjs get a Run button in the browser:

` + "```runjs" + `
const fib = n => n < 2 ? n : fib(n - 1) + fib(n - 2);
console.log([...Array(10).keys()].map(fib).join(", "));
` + "```" + `
`

// runInit scaffolds a new site in the current directory: a config file,
// a content directory with a starter post, and an empty static directory.
func runInit(args []string, env *Environment) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	configPath := filepath.Join(dir, "mdpress.yaml")
	contentDir := filepath.Join(dir, "content")
	postPath := filepath.Join(contentDir, "welcome.md")

	for _, path := range []string{configPath, postPath} {
		if fileutil.FileExists(path) {
			return fmt.Errorf("%w: %s", ErrSiteExists, path)
		}
	}

	if err := os.MkdirAll(contentDir, dirPermissions); err != nil {
		return fmt.Errorf("creating content directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "static"), dirPermissions); err != nil {
		return fmt.Errorf("creating static directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), filePermissions); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	post := fmt.Sprintf(starterPost, env.Now().Format("2006-01-02"))
	if err := os.WriteFile(postPath, []byte(post), filePermissions); err != nil {
		return fmt.Errorf("writing starter post: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Initialized site in %s\n", dir)
	fmt.Fprintln(env.Stdout, "Next: mdpress serve")
	return nil
}
