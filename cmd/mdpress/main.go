package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
	"github.com/alnah/go-mdpress/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches the command and returns the process exit code.
func run(args []string, env *Environment) int {
	// Configure GOMAXPROCS for containers before sizing the render pool.
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env
	// var, in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	warnUnknownEnvVars(env.Stderr)

	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[0]
	rest := args[1:]

	// A leading flag means an implicit build: `mdpress -c site.yaml`
	if len(cmd) > 0 && cmd[0] == '-' {
		cmd = "build"
		rest = args
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	switch cmd {
	case "build":
		return exitOn(env, runBuild(ctx, rest, env))
	case "serve":
		return exitOn(env, runServe(ctx, rest, env))
	case "exec":
		return exitOn(env, runExec(ctx, rest, env))
	case "init":
		return exitOn(env, runInit(rest, env))
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		return exitOn(env, runCompletion(rest, env))
	case "version":
		fmt.Fprintf(env.Stdout, "mdpress %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// exitOn prints the error, when any, and maps it to an exit code.
func exitOn(env *Environment, err error) int {
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// hintFor appends an actionable hint for common failure classes.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdpress.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdpress.ErrTypeset) || errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultConfigName))
	case errors.Is(err, mdpress.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{mdpress.DefaultStyle})
	case errors.Is(err, ErrWritePage):
		return hints.ForOutputDirectory()
	}
	return ""
}
