package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long  string // --output
	Short string // -o (empty if none)
	Bool  bool   // takes no value
	Desc  string // help text
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// extractFlags pulls flag definitions out of a pflag.FlagSet, so the
// completion registry shares one source of truth with flag parsing.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		flags = append(flags, flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Bool:  f.Value.Type() == "bool",
			Desc:  f.Usage,
		})
	})
	return flags
}

// completionCommands returns the command registry for completion.
func completionCommands() []commandDef {
	buildFS := flag.NewFlagSet("build", flag.ContinueOnError)
	addBuildFlags(buildFS, &buildFlags{})

	serveFS := flag.NewFlagSet("serve", flag.ContinueOnError)
	sf := &serveFlags{}
	addBuildFlags(serveFS, &sf.build)
	serveFS.StringVarP(&sf.addr, "addr", "a", "", "listen address")
	serveFS.BoolVar(&sf.noWatch, "no-watch", false, "disable rebuilding on content changes")

	execFS := flag.NewFlagSet("exec", flag.ContinueOnError)
	ef := &execFlags{}
	execFS.StringVarP(&ef.timeout, "timeout", "t", "", "per-snippet timeout")
	execFS.BoolVar(&ef.jsonOut, "json", false, "print protocol messages as JSON lines")
	execFS.IntVarP(&ef.snippet, "snippet", "s", -1, "run only the snippet at this index")
	addCommonFlags(execFS, &ef.common)

	return []commandDef{
		{Name: "build", Desc: "Build the site", Flags: extractFlags(buildFS)},
		{Name: "serve", Desc: "Build, serve, and rebuild on change", Flags: extractFlags(serveFS)},
		{Name: "exec", Desc: "Run snippets through the sandbox", Flags: extractFlags(execFS)},
		{Name: "init", Desc: "Scaffold a new site"},
		{Name: "doctor", Desc: "Check the environment"},
		{Name: "version", Desc: "Show version information"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	switch Shell(args[0]) {
	case ShellBash:
		generateBash(env.Stdout, completionCommands())
	case ShellZsh:
		generateZsh(env.Stdout, completionCommands())
	case ShellFish:
		generateFish(env.Stdout, completionCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, args[0])
	}
	return nil
}

// generateBash writes a bash completion script.
func generateBash(w io.Writer, commands []commandDef) {
	var names []string
	for _, c := range commands {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for mdpress")
	fmt.Fprintln(w, "_mdpress() {")
	fmt.Fprintln(w, "    local cur prev words cword")
	fmt.Fprintln(w, "    _init_completion || return")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    local commands=%q\n", strings.Join(names, " "))
	fmt.Fprintln(w, "    if [[ $cword -eq 1 ]]; then")
	fmt.Fprintln(w, "        COMPREPLY=($(compgen -W \"$commands\" -- \"$cur\"))")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case ${words[1]} in")
	for _, c := range commands {
		if len(c.Flags) == 0 {
			continue
		}
		var opts []string
		for _, f := range c.Flags {
			opts = append(opts, "--"+f.Long)
			if f.Short != "" {
				opts = append(opts, "-"+f.Short)
			}
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(opts, " "))
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -o default -F _mdpress mdpress")
}

// generateZsh writes a zsh completion script.
func generateZsh(w io.Writer, commands []commandDef) {
	fmt.Fprintln(w, "#compdef mdpress")
	fmt.Fprintln(w, "# zsh completion for mdpress")
	fmt.Fprintln(w, "_mdpress() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range commands {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case $words[2] in")
	for _, c := range commands {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintln(w, "        _arguments \\")
		for i, f := range c.Flags {
			sep := " \\"
			if i == len(c.Flags)-1 {
				sep = ""
			}
			fmt.Fprintf(w, "            '--%s[%s]'%s\n", f.Long, zshEscape(f.Desc), sep)
		}
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "_mdpress \"$@\"")
}

// zshEscape guards description text inside single-quoted zsh strings.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	return strings.ReplaceAll(s, "[", "\\[")
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer, commands []commandDef) {
	fmt.Fprintln(w, "# fish completion for mdpress")
	for _, c := range commands {
		fmt.Fprintf(w, "complete -c mdpress -n '__fish_use_subcommand' -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, c := range commands {
		for _, f := range c.Flags {
			fmt.Fprintf(w, "complete -c mdpress -n '__fish_seen_subcommand_from %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(w, " -s %s", f.Short)
			}
			if !f.Bool {
				fmt.Fprint(w, " -r")
			}
			fmt.Fprintf(w, " -d %q\n", f.Desc)
		}
	}
	fmt.Fprintln(w, "complete -c mdpress -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w, "  fish    Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdpress completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdpress completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdpress completion fish > ~/.config/fish/completions/mdpress.fish")
}
