package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher tuning. Editors fire bursts of events per save, so rebuilds are
// debounced; the interval is generous because a rebuild is not cheap.
const (
	rebuildDebounce   = 300 * time.Millisecond
	serveReadTimeout  = 10 * time.Second
	serveWriteTimeout = 30 * time.Second
)

// runServe builds the site, serves it over HTTP, and rebuilds when the
// content tree changes.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args)
	if err != nil {
		return err
	}

	cfg, err := resolveBuildConfig(&flags.build, positional, loadEnvConfig())
	if err != nil {
		return err
	}
	addr := cfg.Serve.Addr
	if flags.addr != "" {
		addr = flags.addr
	}

	rebuild := func() error {
		return buildSite(ctx, &flags.build, positional, env)
	}
	if err := rebuild(); err != nil {
		return err
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      http.FileServer(http.Dir(cfg.Content.OutputDir)),
		ReadTimeout:  serveReadTimeout,
		WriteTimeout: serveWriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		fmt.Fprintf(env.Stdout, "Serving %s on http://%s\n", cfg.Content.OutputDir, displayAddr(addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var watchErr error
	if flags.noWatch {
		select {
		case <-ctx.Done():
		case watchErr = <-serveErr:
		}
	} else {
		watchErr = watchAndRebuild(ctx, cfg.Content.Dir, cfg.Content.StaticDir, rebuild, serveErr, env)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return watchErr
}

// watchAndRebuild runs the fsnotify event loop until the context ends.
// Events are debounced into one rebuild; a failing rebuild is reported and
// the loop keeps going, since the next save may fix it.
func watchAndRebuild(ctx context.Context, contentDir, staticDir string, rebuild func() error, serveErr <-chan error, env *Environment) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, contentDir); err != nil {
		return err
	}
	// Static assets rebuild the site too; the directory may not exist yet
	_ = watchRecursive(watcher, staticDir)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(rebuildDebounce, func() {
			select {
			case pending <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-serveErr:
			return err
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories need watching before their files fire events
			if event.Has(fsnotify.Create) {
				_ = watchRecursive(watcher, event.Name)
			}
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(env.Stderr, "watch error: %v\n", err)
		case <-pending:
			fmt.Fprintln(env.Stdout, "Change detected, rebuilding...")
			if err := rebuild(); err != nil {
				fmt.Fprintf(env.Stderr, "rebuild failed: %v\n", err)
			}
		}
	}
}

// watchRecursive adds a directory and its subdirectories to the watcher.
// Hidden and underscore-prefixed directories follow the same skip rule as
// post discovery.
func watchRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipEntry(d.Name()) && path != dir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevantEvent filters out noise that should not trigger a rebuild.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	// Editor swap and backup files
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	return true
}

// displayAddr turns a listen address into something clickable.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
