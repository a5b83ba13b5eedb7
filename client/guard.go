package client

import (
	"context"
	"sync"
)

// Guard scopes requests to a view's active lifetime. Starting a new
// request cancels the previous one, and the commit function returned by
// Start reports whether results may still be applied — once a newer
// request has started (or the guard is stopped), stale results must be
// dropped, never rendered.
//
// A zero Guard is ready to use.
type Guard struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	stopped bool
}

// Start begins a new request generation. Any in-flight request from an
// earlier generation is cancelled. The returned commit function is safe to
// call from any goroutine and reports whether this generation is still the
// one the view cares about.
func (g *Guard) Start(parent context.Context) (context.Context, func() bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.stopped = false
	g.gen++
	myGen := g.gen

	ctx, cancel := context.WithCancel(parent)
	g.cancel = cancel

	commit := func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		return !g.stopped && g.gen == myGen
	}
	return ctx, commit
}

// Stop cancels any in-flight request and marks all generations stale.
// Called when the view is dismissed.
func (g *Guard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.stopped = true
}
