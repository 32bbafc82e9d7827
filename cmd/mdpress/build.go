package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
	"github.com/alnah/go-mdpress/internal/logging"
)

// runBuild orchestrates a full site build.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	return buildSite(ctx, flags, positional, env)
}

// buildSite loads configuration, renders every post, and assembles the
// index pages. Shared by build and serve.
func buildSite(ctx context.Context, flags *buildFlags, positional []string, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveBuildConfig(flags, positional, envCfg)
	if err != nil {
		return err
	}

	if err := configureLogger(flags.common, env); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout, cfg.Render.TimeoutSeconds)
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "Building %s -> %s\n", cfg.Content.Dir, cfg.Content.OutputDir)
	}

	posts, err := discoverPosts(cfg.Content.Dir)
	if err != nil {
		return err
	}

	loader := env.AssetLoader
	if cfg.Assets.BasePath != "" {
		loader, err = mdpress.NewAssetLoader(cfg.Assets.BasePath)
		if err != nil {
			return err
		}
	}

	builder, err := newSiteBuilder(cfg, loader, cfg.Content.OutputDir)
	if err != nil {
		return err
	}

	opts := rendererOptions(cfg, timeout, env.Logger)
	poolSize := mdpress.ResolvePoolSize(flags.workers)
	pool := mdpress.NewRendererPool(poolSize, opts...)
	defer pool.Close()

	start := env.Now()
	results := renderBatch(ctx, pool, builder, posts)

	if err := builder.writeIndexPages(ctx, results); err != nil {
		return err
	}
	if err := builder.copyStatic(cfg.Content.StaticDir); err != nil {
		return fmt.Errorf("copying static files: %w", err)
	}

	failed := printBuildResults(results, flags.common.quiet, flags.common.verbose, env)

	if flags.checkSnippets {
		if err := checkSnippets(ctx, results, cfg, env); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d post(s) failed", failed)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Built %d post(s) in %v\n",
			len(results)-failed, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// resolveBuildConfig merges config file, environment, and flags.
// A positional argument overrides the content directory.
func resolveBuildConfig(flags *buildFlags, positional []string, envCfg *envConfig) (*config.Config, error) {
	cfg, err := loadSiteConfig(flags.common.config, envCfg)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)

	if envCfg.Workers > 0 && flags.workers == 0 {
		flags.workers = envCfg.Workers
	}

	if len(positional) > 0 {
		cfg.Content.Dir = positional[0]
	}
	if flags.output != "" {
		cfg.Content.OutputDir = flags.output
	}
	if flags.render.style != "" {
		cfg.Render.Stylesheet = flags.render.style
	}
	if flags.render.highlight != "" {
		cfg.Render.Highlight = flags.render.highlight
	}
	if flags.render.hardWraps {
		cfg.Render.HardWraps = true
	}
	if flags.render.toc {
		cfg.Render.TOC = true
	}
	if flags.render.noTOC {
		cfg.Render.TOC = false
	}
	if flags.render.untrusted {
		cfg.Render.Untrusted = true
	}
	if flags.render.staticTypeset {
		cfg.Render.StaticTypeset = true
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configureLogger builds the CLI logger from common flags.
func configureLogger(flags commonFlags, env *Environment) error {
	level := "info"
	if flags.quiet {
		level = "error"
	}
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: flags.logFormat})
	if err != nil {
		return err
	}
	env.Logger = logger
	return nil
}

// rendererOptions maps config to renderer options.
func rendererOptions(cfg *config.Config, timeout time.Duration, logger mdpress.Logger) []mdpress.Option {
	opts := []mdpress.Option{
		mdpress.WithStyle(cfg.Render.Stylesheet),
		mdpress.WithChromaStyle(cfg.Render.Highlight),
		mdpress.WithLang(cfg.Site.Lang),
		mdpress.WithLogger(logger),
	}
	if cfg.Site.DateFormat != "" {
		opts = append(opts, mdpress.WithDateFormat(cfg.Site.DateFormat))
	}
	if cfg.Render.HardWraps {
		opts = append(opts, mdpress.WithHardWraps())
	}
	if cfg.Render.TOC {
		opts = append(opts, mdpress.WithTOC())
	}
	if cfg.Render.StaticTypeset {
		opts = append(opts, mdpress.WithStaticTypeset())
	}
	if timeout > 0 {
		opts = append(opts, mdpress.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpress.WithAssetPath(cfg.Assets.BasePath))
	}
	engines := mdpress.Engines{
		MathJax:  mdpress.DefaultMathJaxURL,
		Mermaid:  mdpress.DefaultMermaidURL,
		Graphviz: mdpress.DefaultGraphvizURL,
	}
	if cfg.Engines.MathJax != "" {
		engines.MathJax = cfg.Engines.MathJax
	}
	if cfg.Engines.Mermaid != "" {
		engines.Mermaid = cfg.Engines.Mermaid
	}
	if cfg.Engines.Graphviz != "" {
		engines.Graphviz = cfg.Engines.Graphviz
	}
	opts = append(opts, mdpress.WithEngines(engines))
	return opts
}

// renderBatch renders posts concurrently using the renderer pool.
// Results keep source order regardless of completion order.
func renderBatch(ctx context.Context, pool *mdpress.RendererPool, builder *siteBuilder, posts []string) []sitePost {
	if len(posts) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(posts) {
		concurrency = len(posts)
	}

	results := make([]sitePost, len(posts))
	var wg sync.WaitGroup
	jobs := make(chan int, len(posts))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			renderer, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = sitePost{SourcePath: posts[idx], Err: err}
				}
				return
			}
			defer pool.Release(renderer)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = sitePost{SourcePath: posts[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = builder.renderPost(ctx, renderer, posts[idx])
			}
		}()
	}

	for i := range posts {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// printBuildResults reports per-post outcomes and returns the failure count.
func printBuildResults(results []sitePost, quiet, verbose bool, env *Environment) int {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.SourcePath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> posts/%s/ (%v)\n",
				r.SourcePath, r.Slug, r.Duration.Round(time.Millisecond))
		}
	}
	return failed
}

// checkSnippets executes every runnable snippet and fails on error frames.
// A single Runner is enough: executions are sequential by design, and each
// runs in a fresh page.
func checkSnippets(ctx context.Context, posts []sitePost, cfg *config.Config, env *Environment) error {
	runner := mdpress.NewRunner(
		mdpress.WithRunnerTimeout(time.Duration(cfg.Runner.TimeoutSeconds)*time.Second),
		mdpress.WithRunnerLogger(env.Logger),
	)
	defer runner.Close()

	var failures int
	for _, p := range posts {
		if p.Err != nil {
			continue
		}
		for _, s := range p.Snippets {
			res, err := runner.Execute(ctx, s.Code)
			if err != nil {
				return fmt.Errorf("running snippet %d of %s: %w", s.Index, p.SourcePath, err)
			}
			if res.Failed() {
				failures++
				for _, msg := range res.Errors() {
					fmt.Fprintf(env.Stderr, "SNIPPET %s[%d]: %s\n", p.SourcePath, s.Index, msg)
				}
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d snippet(s) failed", failures)
	}
	return nil
}
