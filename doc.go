// Package mdpress renders Markdown blog posts to standalone HTML pages.
//
// # Quick Start
//
// Create a renderer, render a post, and close when done:
//
//	r, err := mdpress.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	result, err := r.Render(ctx, mdpress.Input{
//	    Markdown: "---\nname: Hello\ndate: 2025-06-01\n---\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", []byte(result.HTML), 0644)
//
// The result contains the complete page (result.HTML), the article fragment
// before page assembly (result.Body), the parsed frontmatter, the deferred
// rendering features the post uses, and any runnable snippets. Use
// Input.BodyOnly to skip page assembly.
//
// # Rendering Pipeline
//
// Rendering follows these stages:
//
//  1. Markdown preprocessing (line ending and blank line normalization)
//  2. Frontmatter extraction (name, date, topics)
//  3. Markdown to HTML conversion via Goldmark (GFM, math, syntax highlighting)
//  4. Sanitization for untrusted input (bluemonday)
//  5. Page assembly (stylesheet, table of contents, engine script tags)
//  6. Optional static typesetting via headless Chrome (go-rod)
//
// Math, mermaid, and graphviz blocks ship as raw sources inside the page;
// a small bootstrap script typesets them in the reader's browser once the
// engines load. WithStaticTypeset moves that work to build time.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := mdpress.NewRenderer(
//	    mdpress.WithTimeout(2 * time.Minute),
//	    mdpress.WithChromaStyle("monokai"),
//	    mdpress.WithTOC(),
//	)
//
// Per-post options are passed via Input:
//
//	result, err := r.Render(ctx, mdpress.Input{
//	    Markdown:  content,
//	    Title:     "Fallback Title",
//	    CSS:       "body { font-size: 18px; }",
//	    Untrusted: true,
//	})
//
// # Parallel Processing
//
// For batch builds, use RendererPool to manage multiple renderer instances:
//
//	pool := mdpress.NewRendererPool(4)
//	defer pool.Close()
//
//	r, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(r)
//	result, err := r.Render(ctx, input)
//
// # Running Snippets
//
// Posts can carry runnable JavaScript blocks (fences tagged runjs). In the
// reader's browser they execute inside a Web Worker behind a Run button.
// Runner executes the same snippets headlessly and reports the same message
// frames, which is how builds verify snippets before publishing:
//
//	runner := mdpress.NewRunner()
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, "console.log(6 * 7)")
//
// # Custom Assets
//
// Override the built-in stylesheet, templates, and scripts using
// WithAssetPath or a custom AssetLoader:
//
//	r, err := mdpress.NewRenderer(mdpress.WithAssetPath("/path/to/assets"))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── blog.css
//	├── templates/
//	│   ├── page.html
//	│   └── index.html
//	└── scripts/
//	    ├── typeset.js
//	    └── runner.js
//
// # Browser Requirements
//
// Static typesetting and snippet execution require Chrome/Chromium. The
// go-rod library automatically downloads a managed Chromium instance on
// first run (~/.cache/rod/browser/). Plain rendering needs no browser.
//
// For containers and CI environments, set CI=true to disable the Chrome
// sandbox. Use ROD_BROWSER_BIN to point at a pre-installed browser.
package mdpress
