package storage

// Package storage persists preferences in SQLite for front ends that have no
// toolkit preference store.
