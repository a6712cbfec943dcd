package i18n

// Package i18n provides the translated UI strings and resolves the system
// locale to one of the bundled languages.
