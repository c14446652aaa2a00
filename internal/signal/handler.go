// Package signal translates SIGINT and SIGTERM into context cancellation so
// CLI commands can unwind cleanly. The ingest pipeline checks its context
// between files, so an interrupt stops the batch at the next file boundary
// without corrupting the ledger.
//
// The package imports only the standard library so any layer can use it
// without cycles.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler owns a cancellable context tied to process interrupt signals.
type Handler struct {
	ctx    context.Context //nolint:containedctx // the handler's whole job is this context's lifecycle
	cancel context.CancelFunc

	interrupted chan struct{}
	quit        chan struct{}
	signals     chan os.Signal

	interruptOnce sync.Once
	stopOnce      sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM on behalf of parent.
// The returned handler exposes a context that is canceled on the first
// signal. Always call Stop to release the registration.
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		quit:        make(chan struct{}),
		// A buffer of one keeps signal.Notify from dropping a signal that
		// arrives while the watch goroutine is mid-iteration.
		signals: make(chan os.Signal, 1),
	}

	signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)
	go h.watch()

	return h
}

// Context returns the context canceled by the first interrupt. Commands
// run against this context.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel closed once an interrupt has been seen.
// Callers that want to tell Ctrl+C apart from ordinary errors select on it.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Stop unregisters the signal channel and cancels the context. Safe to
// call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.signals)
		close(h.quit)
		h.cancel()
	})
}

// interrupt records the first signal: cancel the context, then close the
// interrupted channel. Later signals are no-ops.
func (h *Handler) interrupt() {
	h.interruptOnce.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

// watch drains the signal channel until Stop is called or the context
// dies. Draining keeps repeated Ctrl+C presses from backing up signal
// delivery; only the first one has any effect.
func (h *Handler) watch() {
	for {
		select {
		case <-h.quit:
			return
		case <-h.ctx.Done():
			return
		case <-h.signals:
			h.interrupt()
		}
	}
}
