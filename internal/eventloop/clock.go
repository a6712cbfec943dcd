package eventloop

import (
	"sync"
	"time"
)

// FrameInterval approximates one display refresh at 60 Hz
const FrameInterval = 16 * time.Millisecond

// Timer is a pending callback that can be cancelled
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Clock schedules callbacks on the controller goroutine
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Dispatcher runs fn on the goroutine that owns controller state
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine
func Immediate(fn func()) {
	fn()
}

type systemClock struct {
	dispatch Dispatcher
}

// NewClock returns a wall clock whose timer callbacks are routed through dispatch.
// A nil dispatch runs callbacks on the timer goroutine.
func NewClock(dispatch Dispatcher) Clock {
	if dispatch == nil {
		dispatch = Immediate
	}
	return &systemClock{dispatch: dispatch}
}

func (c *systemClock) Now() time.Time {
	return time.Now()
}

func (c *systemClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &systemTimer{}
	t.timer = time.AfterFunc(d, func() {
		c.dispatch(func() {
			// A Stop that raced with dispatch still wins.
			if t.fire() {
				f()
			}
		})
	})
	return t
}

type systemTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (t *systemTimer) fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.fired = true
	return true
}

func (t *systemTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}

// Frames requests callbacks aligned to the next animation frame
type Frames interface {
	RequestFrame(fn func()) Timer
}

type clockFrames struct {
	clock Clock
}

// NewFrames returns a frame scheduler that fires once per FrameInterval on clock
func NewFrames(clock Clock) Frames {
	return &clockFrames{clock: clock}
}

func (f *clockFrames) RequestFrame(fn func()) Timer {
	return f.clock.AfterFunc(FrameInterval, fn)
}
