package store

// Package store holds the observable playback state shared by the transport,
// the chapter navigator and the views.
//
// The store is the only component that may be touched from more than one
// goroutine. Subscribers are called outside the lock with (prev, next)
// snapshots in mutation order; a subscriber that mutates the store has its
// change delivered after the current notification round completes.
