package navigator

// Package navigator derives chapter adjacency from the static catalog and
// the store's current chapter, and turns chapter switches into store intents.
// A switch while playing continues playback; a switch while paused only
// browses.
