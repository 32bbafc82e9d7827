package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	mdpress "github.com/alnah/go-mdpress"
)

// runExec executes runnable snippets through the headless runner and
// prints the protocol messages. The argument is a markdown post (its
// runnable fences are extracted), a JavaScript file, or "-" for stdin.
func runExec(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExecFlags(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		printExecUsage(env.Stderr)
		return fmt.Errorf("%w: pass a file or - for stdin", mdpress.ErrEmptyCode)
	}

	if err := configureLogger(flags.common, env); err != nil {
		return err
	}

	snippets, err := loadSnippets(positional[0], env)
	if err != nil {
		return err
	}
	if flags.snippet >= 0 {
		if flags.snippet >= len(snippets) {
			return fmt.Errorf("snippet index %d out of range (post has %d)", flags.snippet, len(snippets))
		}
		snippets = snippets[flags.snippet : flags.snippet+1]
	}

	timeout, err := resolveTimeout(flags.timeout, 0, 0)
	if err != nil {
		return err
	}
	opts := []mdpress.RunnerOption{mdpress.WithRunnerLogger(env.Logger)}
	if timeout > 0 {
		opts = append(opts, mdpress.WithRunnerTimeout(timeout))
	}
	runner := mdpress.NewRunner(opts...)
	defer runner.Close()

	var failures int
	for _, s := range snippets {
		res, err := runner.Execute(ctx, s.Code)
		if err != nil {
			return err
		}
		if res.Failed() {
			failures++
		}
		printMessages(env.Stdout, s, res, flags.jsonOut, flags.common.verbose)
	}

	if failures > 0 {
		return fmt.Errorf("%d snippet(s) failed", failures)
	}
	return nil
}

// loadSnippets reads the input and returns the snippets to execute.
// Markdown files contribute their runnable fences; anything else is
// treated as one JavaScript snippet.
func loadSnippets(input string, env *Environment) ([]mdpress.Snippet, error) {
	var content []byte
	var err error
	if input == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(input) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPost, err)
	}

	ext := filepath.Ext(input)
	if ext == ".md" || ext == ".markdown" {
		renderer, err := mdpress.NewRenderer(mdpress.WithLogger(env.Logger))
		if err != nil {
			return nil, err
		}
		defer renderer.Close()

		snippets := renderer.Snippets(string(content))
		if len(snippets) == 0 {
			return nil, fmt.Errorf("%w: no runnable fences in %s", mdpress.ErrEmptyCode, input)
		}
		return snippets, nil
	}

	return []mdpress.Snippet{{Language: "javascript", Code: string(content)}}, nil
}

// printMessages writes one execution's protocol frames. JSON mode emits
// one message per line, matching the wire shape the in-page worker uses.
func printMessages(w io.Writer, s mdpress.Snippet, res *mdpress.ExecResult, jsonOut, verbose bool) {
	if jsonOut {
		enc := json.NewEncoder(w)
		for _, m := range res.Messages {
			_ = enc.Encode(m)
		}
		return
	}

	for _, m := range res.Messages {
		switch m.Type {
		case mdpress.MessageOutput:
			fmt.Fprintln(w, m.Data)
		case mdpress.MessageError:
			fmt.Fprintf(w, "error: %s\n", m.Text)
		case mdpress.MessageDone:
			if verbose {
				fmt.Fprintf(w, "done [%d] (%v)\n", s.Index, res.Duration.Round(time.Millisecond))
			}
		}
	}
}
