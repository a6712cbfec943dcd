package config

// Package config holds the persisted per-user preferences, the TOML application
// configuration and the embedded chapter catalog.
