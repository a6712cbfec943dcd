package crossfade

// Package crossfade ramps the media element gain around chapter switches.
