package ui

// Package ui contains the Fyne-based desktop user interface for the audiobook.
// It wires user input to the transport, navigator and reader controllers and
// renders the player, the document pages, toasts and settings. All UI strings
// are localized via i18n.Localization.
