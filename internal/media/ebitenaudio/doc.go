package ebitenaudio

// Package ebitenaudio implements media.Element on top of the ebiten audio
// package. Sources are fetched whole over HTTP (or read from local paths),
// decoded to PCM and played through one process-wide audio context.
