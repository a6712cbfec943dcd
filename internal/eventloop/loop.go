package eventloop

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when posting to a loop that has stopped
var ErrClosed = errors.New("event loop closed")

// Loop serializes callbacks onto a single goroutine. It is the dispatcher
// used by headless front ends that have no UI toolkit main loop.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// NewLoop creates a loop; call Run to start processing
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn. It never blocks, so callbacks may post to their own loop.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	l.signal()
	return nil
}

// Dispatch adapts Post to the Dispatcher signature, dropping work after close
func (l *Loop) Dispatch(fn func()) {
	_ = l.Post(fn)
}

// Run processes callbacks until ctx is cancelled or Close is called
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.Close()
			l.runPending()
			return ctx.Err()
		case <-l.wake:
			if !l.runPending() {
				return nil
			}
		}
	}
}

// Close stops accepting callbacks; already queued callbacks still run
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.signal()
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// runPending runs the queued batch and reports whether the loop is still open.
// Once closed nothing new can be queued, so the batch is the last one.
func (l *Loop) runPending() bool {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	open := !l.closed
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return open
}
