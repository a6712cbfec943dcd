package platform

// Package platform contains OS integration: the Downloads directory, saving
// the book document there, and opening or revealing files with the system's
// own applications.
