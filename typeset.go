package mdpress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpress/internal/fileutil"
)

// typesetter abstracts static typesetting to enable testing without a browser.
type typesetter interface {
	Typeset(ctx context.Context, htmlContent string) (string, error)
	Close() error
}

// engineReport mirrors the per-engine counters returned by the in-page
// typeset driver.
type engineReport struct {
	Count  int `json:"count"`
	Failed int `json:"failed"`
}

// typesetReport aggregates the three engines.
type typesetReport struct {
	Math     engineReport `json:"math"`
	Mermaid  engineReport `json:"mermaid"`
	Graphviz engineReport `json:"graphviz"`
}

// typesetDriveJS resolves once every engine on the page has run.
const typesetDriveJS = `() => window.__mdpress.typeset()`

// rodTypesetter renders deferred blocks at build time using headless Chrome
// via go-rod. It loads the assembled page, drives the in-page typeset
// bootstrap, and harvests the resulting DOM.
type rodTypesetter struct {
	handle  *browserHandle
	timeout time.Duration
	logger  Logger
}

// newRodTypesetter creates a rodTypesetter with the given timeout.
func newRodTypesetter(timeout time.Duration, logger Logger) *rodTypesetter {
	return &rodTypesetter{
		handle:  &browserHandle{},
		timeout: timeout,
		logger:  logger,
	}
}

// Typeset opens the page in headless Chrome, runs the typeset driver, and
// returns the serialized DOM. Engine failures are logged and left as inline
// error markers in the page; only browser failures return an error.
func (t *rodTypesetter) Typeset(ctx context.Context, htmlContent string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := t.handle.ensure()
	if err != nil {
		return "", err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return "", err
	}
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout, err := effectiveTimeout(ctx, t.timeout)
	if err != nil {
		return "", err
	}
	timed := page.Timeout(timeout)

	if err := timed.WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// The driver polls for engine globals and resolves with per-engine
	// counters once every block is rendered or marked failed
	obj, err := timed.Evaluate(rod.Eval(typesetDriveJS).ByPromise())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTypeset, err)
	}

	var report typesetReport
	raw, err := obj.Value.MarshalJSON()
	if err == nil {
		err = json.Unmarshal(raw, &report)
	}
	if err != nil {
		return "", fmt.Errorf("%w: decoding report: %v", ErrTypeset, err)
	}
	t.logFailures(report)

	rendered, err := timed.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading page: %v", ErrTypeset, err)
	}
	return rendered, nil
}

// logFailures reports engines that could not render all their blocks.
func (t *rodTypesetter) logFailures(report typesetReport) {
	if report.Math.Failed > 0 {
		t.logger.Warn("math typesetting failed", "failed", report.Math.Failed, "blocks", report.Math.Count)
	}
	if report.Mermaid.Failed > 0 {
		t.logger.Warn("mermaid rendering failed", "failed", report.Mermaid.Failed, "blocks", report.Mermaid.Count)
	}
	if report.Graphviz.Failed > 0 {
		t.logger.Warn("graphviz rendering failed", "failed", report.Graphviz.Failed, "blocks", report.Graphviz.Count)
	}
}

// Close releases browser resources.
func (t *rodTypesetter) Close() error {
	return t.handle.Close()
}
