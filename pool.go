package mdpress

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps renderer instances to limit browser memory use.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool manages a pool of Renderer instances for parallel builds.
// Renderers share nothing, so each can typeset with its own browser.
// They are created lazily on first acquire to avoid startup delay.
type RendererPool struct {
	size      int
	opts      []Option
	renderers []*Renderer
	sem       chan *Renderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool with capacity for n Renderer instances,
// each configured with the given options. Renderers are created lazily
// when acquired, not at pool creation.
func NewRendererPool(n int, opts ...Option) *RendererPool {
	if n < 1 {
		n = 1
	}

	return &RendererPool{
		size:      n,
		opts:      opts,
		renderers: make([]*Renderer, 0, n),
		sem:       make(chan *Renderer, n),
	}
}

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks if all renderers are in use. Returns the construction error when
// a new renderer cannot be created; the slot is returned to the pool so a
// later Acquire can retry. Returns ErrPoolClosed after Close.
func (p *RendererPool) Acquire() (*Renderer, error) {
	// Try to get an existing renderer (non-blocking)
	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	default:
	}

	// Check if we can create a new renderer
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new renderer outside the lock
		r, err := NewRenderer(p.opts...)

		p.mu.Lock()
		if err != nil {
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()

		return r, nil
	}
	p.mu.Unlock()

	// All renderers created, wait for one to be released
	r, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return r, nil
}

// Release returns a renderer to the pool. The send happens under the mutex
// so Close cannot close the channel between the closed check and the send;
// it cannot block because channel capacity equals the pool size.
func (p *RendererPool) Release(r *Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- r
	}
}

// Close releases all renderer resources.
// Returns an aggregated error if multiple renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs in the CLI)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
