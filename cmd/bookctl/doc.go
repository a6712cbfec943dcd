package main

// Command bookctl is the terminal companion to the audiobook reader. It lists
// the chapter catalog, probes the audio assets, saves the document and
// manages persisted player state. bookctl play runs the book headless with
// the transport, navigation and crossfade controllers the desktop app uses.
