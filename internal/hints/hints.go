// Package hints builds the "hint:" suffixes the CLI appends to common
// failures, pointing at the flag or environment variable that usually
// fixes them. Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdpress/internal/fileutil"
)

// IsInContainer reports whether we appear to be inside Docker. A var so
// tests can stub it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the sandbox and browser-path knobs that
// resolve most launch failures in CI and containers.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout points at --timeout; typeset-heavy posts are the usual cause.
func ForTimeout() string {
	return format("for pages with many diagrams, use --timeout flag")
}

// ForConfigNotFound suggests --config or mdpress init, plus the user
// config path when one was among those searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run: mdpress init"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/mdpress") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the stylesheet names that would have worked.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForContentDirectory tells the user where posts are expected.
func ForContentDirectory(dir string) string {
	return format("create " + dir + "/ with .md files, or set content.dir in the config")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
