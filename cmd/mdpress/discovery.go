package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-mdpress/internal/fileutil"
	"github.com/alnah/go-mdpress/internal/hints"
)

// ErrNoContent indicates the content directory is missing or holds no posts.
var ErrNoContent = errors.New("no markdown posts found")

// discoverPosts finds markdown sources under dir, sorted by path for
// deterministic build order. Hidden and underscore-prefixed files and
// directories are skipped, so drafts can live alongside published posts
// as _draft.md or in a _drafts/ folder.
func discoverPosts(dir string) ([]string, error) {
	if !fileutil.DirExists(dir) {
		return nil, fmt.Errorf("%w: %s is not a directory%s", ErrNoContent, dir, hints.ForContentDirectory(dir))
	}

	var posts []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skipEntry(d.Name()) && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		posts = append(posts, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoContent, dir, hints.ForContentDirectory(dir))
	}

	sort.Strings(posts)
	return posts, nil
}

// skipEntry reports whether a directory entry is hidden from builds.
func skipEntry(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
