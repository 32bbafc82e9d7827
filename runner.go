package mdpress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// snippetHarnessJS compiles the snippet inside an async function, so code
// can use await at the top level. Output happens through console events,
// which arrive separately; the harness return value is discarded.
const snippetHarnessJS = `async (code) => {
	const AsyncFunction = Object.getPrototypeOf(async function () {}).constructor;
	return await new AsyncFunction(code)();
}`

// defaultSnippetTimeout matches the in-page worker timeout, so headless and
// in-browser runs of the same snippet fail the same way.
const defaultSnippetTimeout = 10 * time.Second

// drainDelay gives console events emitted at the tail of an execution time
// to arrive before the frame list is sealed.
const drainDelay = 50 * time.Millisecond

// Runner executes JavaScript snippets in an isolated headless Chrome page
// and reports the protocol frames an in-page worker would emit: zero or
// more output and error frames, then done. Snippet failures and timeouts
// become error frames; only browser failures surface as Go errors.
//
// Each Execute runs in a fresh about:blank page, so snippets cannot see
// each other's globals. A Runner is not safe for concurrent use.
type Runner struct {
	handle  *browserHandle
	timeout time.Duration
	logger  Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerTimeout sets the per-snippet execution timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithRunnerTimeout(d time.Duration) RunnerOption {
	if d <= 0 {
		panic("mdpress: WithRunnerTimeout duration must be positive")
	}
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithRunnerLogger sets the logger for execution diagnostics.
func WithRunnerLogger(logger Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner with default configuration. The browser is
// launched lazily on first Execute.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		handle:  &browserHandle{},
		timeout: defaultSnippetTimeout,
		logger:  NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs one snippet and returns the emitted frames in order.
// The context is used for cancellation; its deadline, when sooner than the
// configured timeout, bounds the execution.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Runner) Execute(ctx context.Context, code string) (result *ExecResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if code == "" {
		return nil, ErrEmptyCode
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.handle.ensure()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout, err := effectiveTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}

	frames := &frameCollector{}

	// Console calls and uncaught exceptions stream in as CDP events while
	// the snippet runs
	go page.EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			frames.output(consoleText(page, e.Args))
		},
		func(e *proto.RuntimeExceptionThrown) {
			frames.fail(exceptionText(e.ExceptionDetails))
		},
	)()

	start := time.Now()
	_, err = page.Timeout(timeout).Evaluate(rod.Eval(snippetHarnessJS, code).ByPromise())
	elapsed := time.Since(start)

	if err != nil {
		var evalErr *rod.EvalError
		switch {
		case errors.As(err, &evalErr):
			// The snippet itself threw: report it and finish normally
			frames.fail(exceptionText(evalErr.RuntimeExceptionDetails))
		case errors.Is(err, context.Canceled):
			return nil, err
		case errors.Is(err, context.DeadlineExceeded):
			frames.fail("execution timed out")
		default:
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
	}

	// Console events ride the event pump and can trail the evaluation
	// result; give them a moment before sealing
	time.Sleep(drainDelay)

	messages := frames.seal()
	for _, m := range messages {
		if m.Type == MessageError {
			r.logger.Warn("snippet error", "message", m.Text)
		}
	}

	return &ExecResult{Messages: messages, Duration: elapsed}, nil
}

// Close releases browser resources.
func (r *Runner) Close() error {
	return r.handle.Close()
}

// frameCollector gathers protocol frames for one execution. Console events
// arrive on the event pump goroutine while evaluation errors land on the
// caller's goroutine, so appends are locked. seal appends the terminal done
// frame; stragglers after that are dropped.
type frameCollector struct {
	mu     sync.Mutex
	frames []Message
	sealed bool
}

func (c *frameCollector) output(data string) {
	c.append(Message{Type: MessageOutput, Data: data})
}

func (c *frameCollector) fail(text string) {
	c.append(Message{Type: MessageError, Text: text})
}

func (c *frameCollector) append(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sealed {
		return
	}
	c.frames = append(c.frames, m)
}

func (c *frameCollector) seal() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true
	return append(c.frames, Message{Type: MessageDone})
}

// consoleText renders console call arguments the way the browser console
// would: strings raw, everything else as JSON, joined by spaces. Arguments
// that cannot be resolved fall back to their CDP description.
func consoleText(page *rod.Page, args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		v, err := page.ObjectToJSON(arg)
		if err != nil {
			parts = append(parts, arg.Description)
			continue
		}
		parts = append(parts, consoleValue(v))
	}
	return strings.Join(parts, " ")
}

// consoleValue formats one console argument: strings raw, everything else
// as compact JSON.
func consoleValue(v gson.JSON) string {
	if s, ok := v.Val().(string); ok {
		return s
	}
	return v.JSON("", "")
}

// exceptionText extracts a readable message from a thrown JS exception.
func exceptionText(d *proto.RuntimeExceptionDetails) string {
	if d == nil {
		return "unknown error"
	}
	if d.Exception != nil {
		if d.Exception.Description != "" {
			return d.Exception.Description
		}
		if !d.Exception.Value.Nil() {
			return d.Exception.Value.String()
		}
	}
	return d.Text
}
