package model

// Package model defines domain data structures shared by the player and the
// reader: the chapter catalog, playback and reader state, and the typed state
// enums used by the controllers for explicit transitions.
