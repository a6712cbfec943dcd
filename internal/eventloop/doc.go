package eventloop

// Package eventloop provides the single-threaded scheduling primitives the
// controllers run on: a clock with cancellable timers, a dispatcher that
// marshals asynchronous callbacks back onto the UI goroutine, an
// animation-frame scheduler, and a manual clock for deterministic tests.
