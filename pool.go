package mdpages

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent jobs; each PDF export holds a browser
	// (~200MB).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for file I/O and Chrome child processes.
	cpuDivisor = 2
)

// ResolvePoolSize determines the number of concurrent document jobs.
// Priority: explicit workers > GOMAXPROCS-based calculation. Explicit
// values are still capped by GOMAXPROCS.
func ResolvePoolSize(workers int) int {
	available := runtime.GOMAXPROCS(0)

	if workers > 0 {
		return min(workers, available)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := available / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("renderer pool closed")

// RendererPool hands out PDF renderers to concurrent jobs.
// Each renderer owns its browser. Renderers are started lazily, so a build
// whose pages all fail before export never launches Chrome.
type RendererPool struct {
	newFunc func() PDFRenderer
	idle    chan PDFRenderer

	mu      sync.Mutex
	all     []PDFRenderer
	created int
	closed  bool
}

// NewRendererPool creates a pool with capacity for n renderers built by
// newFunc.
func NewRendererPool(n int, newFunc func() PDFRenderer) *RendererPool {
	n = max(n, 1)
	return &RendererPool{
		newFunc: newFunc,
		idle:    make(chan PDFRenderer, n),
		all:     make([]PDFRenderer, 0, n),
	}
}

// Acquire returns an idle renderer, starts a new one while under capacity,
// or waits for a release. Waiting stops with ctx.
func (p *RendererPool) Acquire(ctx context.Context) (PDFRenderer, error) {
	select {
	case r := <-p.idle:
		return r, nil
	default:
	}

	p.mu.Lock()
	switch {
	case p.closed:
		p.mu.Unlock()
		return nil, ErrPoolClosed
	case p.created < cap(p.idle):
		p.created++
		r := p.newFunc()
		p.all = append(p.all, r)
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	select {
	case r, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a renderer to the pool. Renderers released after Close
// are dropped; Close already shut them down.
func (p *RendererPool) Release(r PDFRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Never blocks: at most cap(idle) renderers exist.
	p.idle <- r
}

// Close shuts every started renderer down and joins their errors.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	all := p.all
	p.mu.Unlock()

	var errs []error
	for _, r := range all {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return cap(p.idle)
}

// Created returns the number of renderers started so far.
func (p *RendererPool) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
