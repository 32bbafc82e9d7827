package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	mdpress "github.com/alnah/go-mdpress"
)

// Sentinel errors for flag validation.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// renderFlags holds flags that tune page rendering.
type renderFlags struct {
	style         string
	highlight     string
	hardWraps     bool
	toc           bool
	noTOC         bool
	untrusted     bool
	staticTypeset bool
	assetPath     string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common        commonFlags
	render        renderFlags
	output        string
	workers       int
	timeout       string
	checkSnippets bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	build   buildFlags
	addr    string
	noWatch bool
}

// execFlags holds all flags for the exec command.
type execFlags struct {
	common  commonFlags
	timeout string
	jsonOut bool
	snippet int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, pretty, json")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.style, "style", "", "page style: name, CSS file path, or raw CSS")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code fences")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render single newlines as <br>")
	fs.BoolVar(&f.toc, "toc", false, "insert a numbered table of contents")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable the table of contents")
	fs.BoolVar(&f.untrusted, "untrusted", false, "sanitize rendered HTML")
	fs.BoolVar(&f.staticTypeset, "static-typeset", false, "typeset math and diagrams at build time (needs Chrome)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addBuildFlags adds build command flags to a FlagSet.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page render timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.checkSnippets, "check-snippets", false, "execute runnable snippets and fail on errors (needs Chrome)")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}
	addBuildFlags(fs, f)
	fs.Usage = func() { printBuildUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}
	addBuildFlags(fs, &f.build)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.BoolVar(&f.noWatch, "no-watch", false, "disable rebuilding on content changes")
	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExecFlags parses exec command flags and returns positional args.
func parseExecFlags(args []string) (*execFlags, []string, error) {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	f := &execFlags{snippet: -1}
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-snippet execution timeout (e.g. 10s)")
	fs.BoolVar(&f.jsonOut, "json", false, "print protocol messages as JSON lines")
	fs.IntVarP(&f.snippet, "snippet", "s", -1, "run only the snippet at this index")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printExecUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdpress.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdpress.MaxPoolSize)
	}
	return nil
}

// resolveTimeout parses the timeout flag with env var and config fallback.
// Priority: flag > env > config seconds > zero (library default applies).
func resolveTimeout(flagValue string, envTimeout time.Duration, configSeconds int) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (use forms like 30s or 2m)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envTimeout > 0 {
		return envTimeout, nil
	}
	if configSeconds > 0 {
		return time.Duration(configSeconds) * time.Second, nil
	}
	return 0, nil
}
