package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/config"
)

func TestSlugFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		title      string
		sourcePath string
		want       string
	}{
		{"simple title", "Why Go?", "x.md", "why-go"},
		{"mixed case and spaces", "Hello World Again", "x.md", "hello-world-again"},
		{"empty title falls back to filename", "", "content/my-first-post.md", "my-first-post"},
		{"unusable title and filename", "???", "content/???.md", "post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := slugFor(tt.title, tt.sourcePath); got != tt.want {
				t.Errorf("slugFor(%q, %q) = %q, want %q", tt.title, tt.sourcePath, got, tt.want)
			}
		})
	}
}

func TestTitleFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"content/my-first-post.md", "my first post"},
		{"deep/dir/under_scores.markdown", "under scores"},
		{"plain.md", "plain"},
	}
	for _, tt := range tests {
		if got := titleFromFilename(tt.path); got != tt.want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSortPosts(t *testing.T) {
	t.Parallel()

	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	posts := []sitePost{
		{Title: "b undated"},
		{Title: "old", Date: date("2023-01-01")},
		{Title: "a undated"},
		{Title: "new", Date: date("2025-06-01")},
		{Title: "mid", Date: date("2024-03-15")},
	}
	sortPosts(posts)

	wantOrder := []string{"new", "mid", "old", "a undated", "b undated"}
	for i, want := range wantOrder {
		if posts[i].Title != want {
			t.Errorf("posts[%d] = %q, want %q", i, posts[i].Title, want)
		}
	}
}

func TestCollectTopics(t *testing.T) {
	t.Parallel()

	posts := []sitePost{
		{Topics: []string{"go", "testing"}},
		{Topics: []string{"go"}},
		{Topics: []string{"blogging"}},
	}
	got := collectTopics(posts)
	want := []string{"blogging", "go", "testing"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topics[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveStyleCSS(t *testing.T) {
	t.Parallel()

	loader := assets.NewEmbeddedLoader()

	t.Run("default name", func(t *testing.T) {
		t.Parallel()
		css, err := resolveStyleCSS("", loader)
		if err != nil {
			t.Fatalf("resolveStyleCSS() error = %v", err)
		}
		if !strings.Contains(css, "body") {
			t.Error("default stylesheet looks empty")
		}
	})

	t.Run("raw css", func(t *testing.T) {
		t.Parallel()
		raw := "body { color: red }"
		css, err := resolveStyleCSS(raw, loader)
		if err != nil {
			t.Fatalf("resolveStyleCSS() error = %v", err)
		}
		if css != raw {
			t.Errorf("got %q, want raw CSS back", css)
		}
	})

	t.Run("file path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.css")
		if err := os.WriteFile(path, []byte(".x{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		css, err := resolveStyleCSS(path, loader)
		if err != nil {
			t.Fatalf("resolveStyleCSS() error = %v", err)
		}
		if css != ".x{}" {
			t.Errorf("got %q", css)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		if _, err := resolveStyleCSS("nope", loader); err == nil {
			t.Error("expected error for unknown style name")
		}
	})
}

func TestIndexEntries(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	builder, err := newSiteBuilder(cfg, assets.NewEmbeddedLoader(), t.TempDir())
	if err != nil {
		t.Fatalf("newSiteBuilder() error = %v", err)
	}

	date, _ := time.Parse("2006-01-02", "2025-06-01")
	posts := []sitePost{
		{Slug: "hello", Title: "Hello", Date: date, Topics: []string{"go"}},
		{Slug: "undated", Title: "Undated"},
	}

	entries := builder.indexEntries(posts, "")
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].URL != "posts/hello/" {
		t.Errorf("URL = %q", entries[0].URL)
	}
	if entries[0].DateMachine != "2025-06-01" {
		t.Errorf("DateMachine = %q", entries[0].DateMachine)
	}
	if entries[0].DateDisplay != "June 1, 2025" {
		t.Errorf("DateDisplay = %q", entries[0].DateDisplay)
	}
	if len(entries[0].Topics) != 1 || entries[0].Topics[0].URL != "topics/go/" {
		t.Errorf("Topics = %v", entries[0].Topics)
	}
	if entries[1].DateMachine != "" || entries[1].DateDisplay != "" {
		t.Error("undated post should carry no date strings")
	}

	// Topic pages sit two levels deep and climb back out
	rebased := builder.indexEntries(posts, "../../")
	if rebased[0].URL != "../../posts/hello/" {
		t.Errorf("rebased URL = %q", rebased[0].URL)
	}
}

func TestWriteIndexPages(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Site.Title = "My Blog"
	builder, err := newSiteBuilder(cfg, assets.NewEmbeddedLoader(), outDir)
	if err != nil {
		t.Fatalf("newSiteBuilder() error = %v", err)
	}

	date, _ := time.Parse("2006-01-02", "2025-06-01")
	posts := []sitePost{
		{Slug: "hello", Title: "Hello", Date: date, Topics: []string{"go"}},
		{Slug: "broken", Title: "Broken", Err: os.ErrNotExist},
	}

	if err := builder.writeIndexPages(context.Background(), posts); err != nil {
		t.Fatalf("writeIndexPages() error = %v", err)
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	for _, want := range []string{"My Blog", `href="posts/hello/"`, "Hello"} {
		if !strings.Contains(string(index), want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Contains(string(index), "Broken") {
		t.Error("failed post should not appear on the index")
	}

	topic, err := os.ReadFile(filepath.Join(outDir, "topics", "go", "index.html"))
	if err != nil {
		t.Fatalf("reading topic page: %v", err)
	}
	if !strings.Contains(string(topic), `href="../../posts/hello/"`) {
		t.Error("topic page links should climb back to the site root")
	}
}
