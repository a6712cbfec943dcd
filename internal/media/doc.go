package media

// Package media defines the element contract the transport drives: a single
// audio resource with asynchronous play, lifecycle events and error codes.
