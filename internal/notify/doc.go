package notify

// Package notify implements short-lived user notifications (toasts) with
// per-kind display durations.
