package probe

// Package probe checks that every chapter's audio asset is reachable before
// a listening session starts. Requests run concurrently with a bounded number
// in flight; each chapter gets its own Result so one broken URL never hides
// the others.
