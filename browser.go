package mdpress

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-mdpress/internal/process"
)

// effectiveTimeout bounds a browser operation by the configured timeout,
// tightened by the context deadline when that is sooner. Returns
// context.DeadlineExceeded when the deadline has already passed.
func effectiveTimeout(ctx context.Context, configured time.Duration) (time.Duration, error) {
	timeout := configured
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
		if timeout <= 0 {
			return 0, context.DeadlineExceeded
		}
	}
	return timeout, nil
}

// browserHandle lazily launches and connects a headless Chrome instance.
// Rod automatically downloads Chromium on first run if not found. Shared
// by the static typesetter and the snippet runner; like them, it is not
// safe for concurrent use.
type browserHandle struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// ensure connects to the browser on first use.
func (h *browserHandle) ensure() (*rod.Browser, error) {
	if h.browser != nil {
		return h.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	h.browser = browser
	h.launcher = l
	return browser, nil
}

// Close releases browser resources. The launched Chrome and its children
// are killed even when the graceful close fails, so repeated builds do
// not leak browser processes.
func (h *browserHandle) Close() error {
	if h.browser == nil {
		return nil
	}
	err := h.browser.Close()
	if h.launcher != nil {
		pid := h.launcher.PID()
		h.launcher.Kill()
		if pid > 0 {
			process.KillProcessGroup(pid)
		}
		h.launcher = nil
	}
	h.browser = nil
	return err
}
