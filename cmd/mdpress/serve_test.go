package main

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestRelevantEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"markdown write", fsnotify.Event{Name: "content/post.md", Op: fsnotify.Write}, true},
		{"new file", fsnotify.Event{Name: "content/new.md", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "content/post.md", Op: fsnotify.Chmod}, false},
		{"vim swap file", fsnotify.Event{Name: "content/.post.md.swp", Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: "content/post.md~", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "content/.DS_Store", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := relevantEvent(tt.event); got != tt.want {
				t.Errorf("relevantEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestDisplayAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want string
	}{
		{":8080", "localhost:8080"},
		{"0.0.0.0:3000", "0.0.0.0:3000"},
		{"127.0.0.1:8080", "127.0.0.1:8080"},
	}
	for _, tt := range tests {
		if got := displayAddr(tt.addr); got != tt.want {
			t.Errorf("displayAddr(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestWatchRecursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"post.md":            "# A\n",
		"sub/nested.md":      "# B\n",
		"_drafts/hidden.md":  "# C\n",
		".git/objects/x.tmp": "x",
	})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("fsnotify.NewWatcher() error = %v", err)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, dir); err != nil {
		t.Fatalf("watchRecursive() error = %v", err)
	}

	watched := make(map[string]bool)
	for _, w := range watcher.WatchList() {
		watched[w] = true
	}
	if !watched[dir] || !watched[filepath.Join(dir, "sub")] {
		t.Errorf("watch list %v missing visible directories", watcher.WatchList())
	}
	if watched[filepath.Join(dir, "_drafts")] || watched[filepath.Join(dir, ".git")] {
		t.Errorf("watch list %v includes skipped directories", watcher.WatchList())
	}
}

func TestWatchRecursiveMissingDir(t *testing.T) {
	t.Parallel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("fsnotify.NewWatcher() error = %v", err)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, filepath.Join(t.TempDir(), "nowhere")); err == nil {
		t.Error("expected error for missing directory")
	}
}
