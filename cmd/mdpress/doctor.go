package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

// ciVars are the environment variables that mark a CI run.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// doctorResult is the full diagnostic report, also the JSON shape of
// doctor --json.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo reports browser detection. Only static typesetting,
// --check-snippets, and exec need Chrome, so an absent browser is a
// warning, not an error.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd runs every check and reports. Warnings still exit 0; only
// hard errors exit nonzero.
func runDoctorCmd(args []string, env *Environment) int {
	rep := runDoctor()

	if slices.Contains(args, "--json") {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	} else {
		printDoctorResult(env.Stdout, rep)
	}

	if rep.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor() *doctorResult {
	rep := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(rep)
	checkEnvironment(rep)
	checkSystem(rep)

	switch {
	case len(rep.Errors) > 0:
		rep.Status = "errors"
	case len(rep.Warnings) > 0:
		rep.Status = "warnings"
	default:
		rep.Status = "ready"
	}
	return rep
}

// checkChrome looks for a usable browser: an explicit ROD_BROWSER_BIN
// first, then rod's own search path.
func checkChrome(rep *doctorResult) {
	path := rep.Env.BrowserBin
	if path == "" {
		found := false
		if path, found = launcher.LookPath(); !found {
			rep.warnf("Chrome/Chromium not found; static typesetting and exec will download one on first use, or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(path); err != nil {
		rep.errorf("Chrome not found at %s", path)
		return
	}
	rep.Chrome.Found = true
	rep.Chrome.Path = path

	if out, err := exec.Command(path, "--version").Output(); err == nil {
		rep.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		rep.warnf("Could not get Chrome version: %v", err)
	}
	rep.Chrome.Sandbox = rep.Env.NoSandbox != "1"
}

// checkEnvironment flags container and CI contexts, where Chrome needs
// the sandbox disabled to launch at all.
func checkEnvironment(rep *doctorResult) {
	rep.Env.Container, rep.Env.ContainerHint = isContainer()

	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			rep.Env.CI = true
			break
		}
	}

	if (rep.Env.Container || rep.Env.CI) && rep.Env.NoSandbox != "1" {
		rep.warnf("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 before using static typesetting or exec")
	}
}

// isContainer probes common container signals, most explicit first. The
// hint names whichever signal matched. MDPRESS_CONTAINER=1 forces a
// positive answer for setups none of the probes catch.
func isContainer() (bool, string) {
	if os.Getenv("MDPRESS_CONTAINER") == "1" {
		return true, "MDPRESS_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// podman and systemd-nspawn set this
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp dir is writable; typesetting and exec
// stage pages there before loading them over file://.
func checkSystem(rep *doctorResult) {
	probe := filepath.Join(os.TempDir(), "mdpress-doctor-test")
	if err := os.WriteFile(probe, []byte("test"), 0600); err != nil {
		rep.errorf("Temp directory not writable: %s", os.TempDir())
		return
	}
	_ = os.Remove(probe)
	rep.System.TempWritable = true
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "mdpress doctor\n\n")

	fmt.Fprintln(w, "Chrome/Chromium (needed for --static-typeset, --check-snippets, and exec)")
	switch {
	case !r.Chrome.Found:
		fmt.Fprintln(w, "  [WARN] Not found (plain builds work without it)")
	default:
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	}

	fmt.Fprintf(w, "\nEnvironment\n")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}

	fmt.Fprintf(w, "\nSystem\n")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, s := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", s)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, s := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", s)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
