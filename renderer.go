package mdpress

import (
	"context"
	"fmt"
	"html/template"
	"os"

	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/dateutil"
	"github.com/alnah/go-mdpress/internal/fileutil"
	"github.com/alnah/go-mdpress/internal/frontmatter"
	"github.com/alnah/go-mdpress/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.PostPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLSanitizer        = (*pipeline.UGCSanitizer)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.PageBuilder          = (*pipeline.TemplatePageBuilder)(nil)
	_ typesetter                    = (*rodTypesetter)(nil)
)

// Renderer orchestrates the markdown-to-page rendering pipeline.
// Create with NewRenderer(), use Render() per post, and Close() when done.
// A Renderer is not safe for concurrent use; see RendererPool.
type Renderer struct {
	cfg               rendererConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	logger            Logger
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	sanitizer         pipeline.HTMLSanitizer
	cssInjector       pipeline.CSSInjector
	pageBuilder       pipeline.PageBuilder
	typesetter        typesetter
	highlightCSS      string
	typesetScript     string
	runnerScript      string
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g. WithTimeout, WithTOC, WithStyle).
// Returns an error if asset loading or template parsing fails.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeout:     defaultTimeout,
			chromaStyle: pipeline.DefaultChromaStyle,
			lang:        defaultLang,
			dateFormat:  dateutil.DefaultDisplayFormat,
			engines: Engines{
				MathJax:  DefaultMathJaxURL,
				Mermaid:  DefaultMermaidURL,
				Graphviz: DefaultGraphvizURL,
			},
		},
		assetLoader:  assets.NewEmbeddedLoader(),
		logger:       NopLogger{},
		preprocessor: pipeline.NewPostPreprocessor(),
		sanitizer:    pipeline.NewUGCSanitizer(),
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(r)
	}

	// Handle WithAssetPath: resolve to a filesystem loader with embedded fallback
	if r.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		r.assetLoader = resolver
	}

	// Handle WithAssetLoader: the public interface carries the same method
	// set as the internal one, so the value is used directly
	if r.publicAssetLoader != nil {
		r.assetLoader = r.publicAssetLoader
	}

	// Validate the date display format once, not per post
	if _, err := dateutil.ParseDateFormat(r.cfg.dateFormat); err != nil {
		return nil, fmt.Errorf("date format %q: %w", r.cfg.dateFormat, err)
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	// Highlight stylesheet derived from the chroma style, scoped to .chroma
	highlightCSS, err := pipeline.HighlightCSS(r.cfg.chromaStyle)
	if err != nil {
		return nil, fmt.Errorf("building highlight stylesheet: %w", err)
	}
	r.highlightCSS = highlightCSS

	// Create pipeline stages (if not injected by tests)
	if r.htmlConverter == nil {
		r.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.ConverterConfig{
			ChromaStyle: r.cfg.chromaStyle,
			HardWraps:   r.cfg.hardWraps,
		})
	}

	if r.pageBuilder == nil {
		tmplContent, err := r.assetLoader.LoadTemplate(assets.PageTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		builder, err := pipeline.NewTemplatePageBuilder(assets.PageTemplateName, tmplContent)
		if err != nil {
			return nil, fmt.Errorf("parsing page template: %w", err)
		}
		r.pageBuilder = builder
	}

	r.typesetScript, err = r.assetLoader.LoadScript(assets.TypesetScriptName)
	if err != nil {
		return nil, fmt.Errorf("loading typeset script: %w", err)
	}

	r.runnerScript, err = r.assetLoader.LoadScript(assets.RunnerScriptName)
	if err != nil {
		return nil, fmt.Errorf("loading runner script: %w", err)
	}

	if r.typesetter == nil && r.cfg.staticTypeset {
		r.typesetter = newRodTypesetter(r.cfg.timeout, r.logger)
	}

	return r, nil
}

// Render runs the full pipeline and returns the rendered post.
// The context is used for cancellation and timeout.
// If input.BodyOnly is true, page assembly and typesetting are skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := r.validateInput(input); err != nil {
		return nil, err
	}

	// Preprocess markdown. BOM stripping must happen before frontmatter
	// detection or the opening delimiter is missed
	mdContent := r.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Extract frontmatter. Parse problems are advisory: the post still
	// renders, with the problem logged
	meta, body, err := frontmatter.Parse([]byte(mdContent))
	if err != nil {
		r.logger.Warn("frontmatter problem", "name", meta.Name, "err", err)
	}
	mdBody := string(body)

	// Convert to HTML
	htmlContent, err := r.htmlConverter.ToHTML(ctx, mdBody)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Strip scriptable markup from untrusted input
	if input.Untrusted {
		htmlContent = r.sanitizer.Sanitize(htmlContent)
	}

	features := pipeline.DetectFeatures(htmlContent)
	snippets := pipeline.ExtractSnippets(mdBody)

	// Prepend table of contents when enabled and the post has enough headings
	if r.cfg.toc {
		if toc := pipeline.BuildTOC(htmlContent, pipeline.DefaultTOCConfig()); toc != "" {
			htmlContent = toc + htmlContent
		}
	}

	res := &Result{
		Body:        htmlContent,
		Frontmatter: toFrontmatter(meta),
		Features:    toFeatures(features),
		Snippets:    toSnippets(snippets),
	}

	// Skip page assembly in BodyOnly mode
	if input.BodyOnly {
		res.HTML = htmlContent
		return res, nil
	}

	page, err := r.buildPage(ctx, htmlContent, meta, input, features)
	if err != nil {
		return nil, err
	}

	// User CSS lands after the base stylesheet so it can override
	if input.CSS != "" {
		page = r.cssInjector.InjectCSS(page, input.CSS)
	}

	// Static typesetting: engine failures are logged and marked inline by
	// the page script; only browser failures surface as errors
	if r.cfg.staticTypeset && r.typesetter != nil && features.NeedsTypeset() {
		page, err = r.typesetter.Typeset(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("static typesetting: %w", err)
		}
	}

	res.HTML = page
	return res, nil
}

// Snippets extracts runnable code blocks without rendering the post.
func (r *Renderer) Snippets(markdown string) []Snippet {
	mdContent := r.preprocessor.PreprocessMarkdown(context.Background(), markdown)
	_, body, err := frontmatter.Parse([]byte(mdContent))
	if err != nil {
		r.logger.Warn("frontmatter problem", "err", err)
	}
	return toSnippets(pipeline.ExtractSnippets(string(body)))
}

// Close releases resources (headless Chrome browser).
func (r *Renderer) Close() error {
	if r.typesetter != nil {
		return r.typesetter.Close()
	}
	return nil
}

// buildPage fills the page template with the rendered article.
func (r *Renderer) buildPage(ctx context.Context, htmlContent string, meta frontmatter.Metadata, input Input, features pipeline.Features) (string, error) {
	title := meta.Name
	if title == "" {
		title = input.Title
	}
	if title == "" {
		title = "Untitled"
	}

	data := pipeline.PageData{
		Lang:    r.cfg.lang,
		Title:   title,
		Styles:  template.CSS(r.cfg.resolvedStyle + "\n" + r.highlightCSS),
		Content: template.HTML(htmlContent), // #nosec G203 -- pipeline output, sanitized when untrusted
		Topics:  meta.Topics,
	}

	if !meta.Date.IsZero() {
		data.DateMachine = dateutil.Machine(meta.Date)
		display, err := dateutil.Display(meta.Date, r.cfg.dateFormat)
		if err != nil {
			r.logger.Warn("date display failed", "err", err)
			display = data.DateMachine
		}
		data.DateDisplay = display
	}

	// Engine tags and scripts only for features the post uses
	if features.Math {
		data.MathJaxURL = r.cfg.engines.MathJax
	}
	if features.Mermaid {
		data.MermaidURL = r.cfg.engines.Mermaid
	}
	if features.Graphviz {
		data.GraphvizURL = r.cfg.engines.Graphviz
	}
	if features.NeedsTypeset() {
		data.TypesetScript = template.JS(r.typesetScript) // #nosec G203 -- embedded asset
	}
	if features.Runnable {
		data.RunnerScript = template.JS(r.runnerScript) // #nosec G203 -- embedded asset
	}

	page, err := r.pageBuilder.BuildPage(ctx, data)
	if err != nil {
		return "", fmt.Errorf("assembling page: %w", err)
	}
	return page, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. Called during NewRenderer after options are applied and the asset
// loader is configured. With no style input the default stylesheet is used.
func (r *Renderer) resolveStyle() error {
	input := r.cfg.styleInput
	if input == "" {
		css, err := r.assetLoader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return fmt.Errorf("loading default style: %w", err)
		}
		r.cfg.resolvedStyle = css
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		r.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		r.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := r.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	r.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by config loading. Both paths
// converge here, ensuring all inputs are validated before processing.
func (r *Renderer) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return nil
}

// toFrontmatter converts internal metadata to the public type.
func toFrontmatter(m frontmatter.Metadata) Frontmatter {
	return Frontmatter{
		Name:   m.Name,
		Date:   m.Date,
		Topics: m.Topics,
	}
}

// toFeatures converts internal pipeline features to the public type.
func toFeatures(f pipeline.Features) Features {
	return Features{
		Math:     f.Math,
		Mermaid:  f.Mermaid,
		Graphviz: f.Graphviz,
		Runnable: f.Runnable,
	}
}

// toSnippets converts internal pipeline snippets to the public type.
func toSnippets(in []pipeline.Snippet) []Snippet {
	if len(in) == 0 {
		return nil
	}
	out := make([]Snippet, len(in))
	for i, s := range in {
		out[i] = Snippet(s)
	}
	return out
}
