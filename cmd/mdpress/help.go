package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Render the content directory into a static site")
	fmt.Fprintln(w, "  serve       Build, serve locally, and rebuild on change")
	fmt.Fprintln(w, "  exec        Run a post's code snippets in the sandbox")
	fmt.Fprintln(w, "  init        Scaffold a new site in the current directory")
	fmt.Fprintln(w, "  doctor      Check Chrome and environment readiness")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpress help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress build [content-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown posts into a static site: one page per post,")
	fmt.Fprintln(w, "a front page, and one page per topic.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  content-dir    Markdown source directory (default: content, or config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: public)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-page render timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --style <s>           Page style: name, CSS file path, or raw CSS")
	fmt.Fprintln(w, "      --highlight <s>       Chroma style for code fences")
	fmt.Fprintln(w, "      --hard-wraps          Render single newlines as <br>")
	fmt.Fprintln(w, "      --toc                 Insert a numbered table of contents")
	fmt.Fprintln(w, "      --no-toc              Disable the table of contents")
	fmt.Fprintln(w, "      --untrusted           Sanitize rendered HTML")
	fmt.Fprintln(w, "      --static-typeset      Typeset math/diagrams at build time (needs Chrome)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Verification:")
	fmt.Fprintln(w, "      --check-snippets      Execute runnable snippets, fail on errors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-post timing")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, pretty, json")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress serve [content-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site, serve it over HTTP, and rebuild when the content")
	fmt.Fprintln(w, "or static directory changes. Accepts all build flags, plus:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "      --no-watch            Disable rebuilding on content changes")
}

// printExecUsage prints usage for the exec command.
func printExecUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress exec <file | -> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execute JavaScript in an isolated headless-browser page and print")
	fmt.Fprintln(w, "the execution messages. Markdown input runs its runnable fences;")
	fmt.Fprintln(w, "other files and stdin (-) run as one snippet.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -s, --snippet <n>         Run only the snippet at this index")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-snippet timeout (e.g. 10s)")
	fmt.Fprintln(w, "      --json                Print protocol messages as JSON lines")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show completion timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "exec":
		printExecUsage(env.Stdout)
	case "init":
		fmt.Fprintln(env.Stdout, "Usage: mdpress init [dir]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Scaffold a new site: mdpress.yaml, a content/ directory with a")
		fmt.Fprintln(env.Stdout, "starter post, and an empty static/ directory.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mdpress doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome availability and environment readiness.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpress version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpress help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
