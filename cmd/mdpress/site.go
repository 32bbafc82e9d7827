package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/config"
	"github.com/alnah/go-mdpress/internal/dateutil"
	"github.com/alnah/go-mdpress/internal/fileutil"
	"github.com/alnah/go-mdpress/internal/pipeline"
)

// Sentinel errors for site building.
var (
	ErrReadPost  = errors.New("failed to read post")
	ErrWritePage = errors.New("failed to write page")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// pagePathPrefix re-bases relative references for pages published at
// posts/<slug>/index.html, two levels below the site root.
const pagePathPrefix = "../../"

// sitePost is one rendered post with the metadata index pages need.
type sitePost struct {
	SourcePath string
	Slug       string
	Title      string
	Date       time.Time
	Topics     []string
	Snippets   []mdpress.Snippet
	Err        error
	Duration   time.Duration
}

// siteBuilder renders a content tree into a publishable directory.
type siteBuilder struct {
	cfg       *config.Config
	loader    assets.AssetLoader
	outputDir string
	styleCSS  string
	indexTmpl *pipeline.TemplatePageBuilder
}

// newSiteBuilder prepares the shared pieces of a build: the resolved
// stylesheet and the parsed index template.
func newSiteBuilder(cfg *config.Config, loader assets.AssetLoader, outputDir string) (*siteBuilder, error) {
	styleCSS, err := resolveStyleCSS(cfg.Render.Stylesheet, loader)
	if err != nil {
		return nil, err
	}

	tmplContent, err := loader.LoadTemplate(assets.IndexTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading index template: %w", err)
	}
	indexTmpl, err := pipeline.NewTemplatePageBuilder(assets.IndexTemplateName, tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	return &siteBuilder{
		cfg:       cfg,
		loader:    loader,
		outputDir: outputDir,
		styleCSS:  styleCSS,
		indexTmpl: indexTmpl,
	}, nil
}

// resolveStyleCSS resolves a style input (name, path, or raw CSS) to CSS
// content, mirroring how the renderer treats its style option.
func resolveStyleCSS(input string, loader assets.AssetLoader) (string, error) {
	if input == "" {
		input = assets.DefaultStyleName
	}
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}
	if fileutil.IsCSS(input) {
		return input, nil
	}
	return loader.LoadStyle(input)
}

// renderPost renders one markdown source and writes it under
// posts/<slug>/index.html. Returns the post metadata for the site index.
func (b *siteBuilder) renderPost(ctx context.Context, r *mdpress.Renderer, sourcePath string) sitePost {
	start := time.Now()
	post := sitePost{SourcePath: sourcePath}

	content, err := os.ReadFile(sourcePath) // #nosec G304 -- discovered path
	if err != nil {
		post.Err = fmt.Errorf("%w: %v", ErrReadPost, err)
		post.Duration = time.Since(start)
		return post
	}

	fallbackTitle := titleFromFilename(sourcePath)
	result, err := r.Render(ctx, mdpress.Input{
		Markdown:  string(content),
		Title:     fallbackTitle,
		Untrusted: b.cfg.Render.Untrusted,
	})
	if err != nil {
		post.Err = err
		post.Duration = time.Since(start)
		return post
	}

	post.Title = result.Frontmatter.Name
	if post.Title == "" {
		post.Title = fallbackTitle
	}
	post.Date = result.Frontmatter.Date
	post.Topics = result.Frontmatter.Topics
	post.Snippets = result.Snippets
	post.Slug = slugFor(post.Title, sourcePath)

	// Posts publish one level deep, so relative image and link paths
	// written against the content root need re-basing
	page, err := pipeline.RewriteRelativePaths(result.HTML, pagePathPrefix)
	if err != nil {
		post.Err = fmt.Errorf("rewriting paths: %w", err)
		post.Duration = time.Since(start)
		return post
	}

	outPath := filepath.Join(b.outputDir, "posts", post.Slug, "index.html")
	if err := writePage(outPath, page); err != nil {
		post.Err = err
	}
	post.Duration = time.Since(start)
	return post
}

// writeIndexPages builds the front page and one page per topic.
func (b *siteBuilder) writeIndexPages(ctx context.Context, posts []sitePost) error {
	published := make([]sitePost, 0, len(posts))
	for _, p := range posts {
		if p.Err == nil {
			published = append(published, p)
		}
	}
	sortPosts(published)

	heading := b.cfg.Site.Title
	if heading == "" {
		heading = "Posts"
	}

	// Front page: posts/<slug>/ and topics/<topic>/ are both one hop down
	frontData := pipeline.IndexData{
		Lang:    b.cfg.Site.Lang,
		Title:   heading,
		Styles:  styleBlock(b.styleCSS),
		Heading: heading,
		Intro:   b.cfg.Site.Author,
		Posts:   b.indexEntries(published, ""),
	}
	front, err := b.indexTmpl.BuildPage(ctx, frontData)
	if err != nil {
		return fmt.Errorf("assembling index: %w", err)
	}
	if err := writePage(filepath.Join(b.outputDir, "index.html"), front); err != nil {
		return err
	}

	// Topic pages: links climb back out of topics/<topic>/
	for _, topic := range collectTopics(published) {
		topicPosts := make([]sitePost, 0, len(published))
		for _, p := range published {
			if hasTopic(p, topic) {
				topicPosts = append(topicPosts, p)
			}
		}

		data := pipeline.IndexData{
			Lang:    b.cfg.Site.Lang,
			Title:   fmt.Sprintf("%s: %s", heading, topic),
			Styles:  styleBlock(b.styleCSS),
			Heading: topic,
			Posts:   b.indexEntries(topicPosts, pagePathPrefix),
		}
		page, err := b.indexTmpl.BuildPage(ctx, data)
		if err != nil {
			return fmt.Errorf("assembling topic page %q: %w", topic, err)
		}
		outPath := filepath.Join(b.outputDir, "topics", slugFor(topic, topic), "index.html")
		if err := writePage(outPath, page); err != nil {
			return err
		}
	}

	return nil
}

// indexEntries converts posts to template rows. prefix re-bases the URLs
// for pages that do not sit at the site root.
func (b *siteBuilder) indexEntries(posts []sitePost, prefix string) []pipeline.IndexEntry {
	dateFormat := b.cfg.Site.DateFormat
	if dateFormat == "" {
		dateFormat = dateutil.DefaultDisplayFormat
	}

	entries := make([]pipeline.IndexEntry, 0, len(posts))
	for _, p := range posts {
		entry := pipeline.IndexEntry{
			URL:   prefix + "posts/" + p.Slug + "/",
			Title: p.Title,
		}
		if !p.Date.IsZero() {
			entry.DateMachine = dateutil.Machine(p.Date)
			if display, err := dateutil.Display(p.Date, dateFormat); err == nil {
				entry.DateDisplay = display
			} else {
				entry.DateDisplay = entry.DateMachine
			}
		}
		for _, topic := range p.Topics {
			entry.Topics = append(entry.Topics, pipeline.TopicLink{
				URL:  prefix + "topics/" + slugFor(topic, topic) + "/",
				Name: topic,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

// copyStatic copies the static directory into the output root when present.
func (b *siteBuilder) copyStatic(staticDir string) error {
	if !fileutil.DirExists(staticDir) {
		return nil
	}
	return fileutil.CopyDir(staticDir, b.outputDir)
}

// sortPosts orders posts newest first; undated posts sink to the end,
// ordered by title so the listing stays stable.
func sortPosts(posts []sitePost) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return a.Title < b.Title
		case a.Date.IsZero():
			return false
		case b.Date.IsZero():
			return true
		default:
			return a.Date.After(b.Date)
		}
	})
}

// collectTopics returns the sorted set of topics across posts.
func collectTopics(posts []sitePost) []string {
	seen := map[string]bool{}
	var topics []string
	for _, p := range posts {
		for _, t := range p.Topics {
			if !seen[t] {
				seen[t] = true
				topics = append(topics, t)
			}
		}
	}
	sort.Strings(topics)
	return topics
}

// hasTopic reports whether the post carries the topic.
func hasTopic(p sitePost, topic string) bool {
	for _, t := range p.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// slugFor derives a URL slug from the post name, falling back to the
// source filename when the name produces nothing usable.
func slugFor(name, sourcePath string) string {
	if s, err := slug.Normalize(name); err == nil && s != "" {
		return s
	}
	if s, err := slug.Normalize(titleFromFilename(sourcePath)); err == nil && s != "" {
		return s
	}
	return "post"
}

// titleFromFilename turns a source path into a readable fallback title.
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
}

// styleBlock wraps resolved CSS for the template.
func styleBlock(css string) template.CSS {
	return template.CSS(css)
}

// writePage writes rendered HTML, creating parent directories as needed.
func writePage(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	// #nosec G306 -- published pages are meant to be readable
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	return nil
}
