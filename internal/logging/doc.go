package logging

// Package logging builds the zap loggers shared by the GUI and the CLI and
// defines the field names controllers use to tag playback and reader events.
