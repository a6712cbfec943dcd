package transport

// Package transport keeps one media element in step with the playback store.
//
// The controller reacts to store changes (source, intent, volume, rate) by
// driving the element, and folds element events back into the store and a
// transient Status used by the views. All methods must be called on the UI
// goroutine; element events and play completions are marshalled there through
// the configured dispatcher.
