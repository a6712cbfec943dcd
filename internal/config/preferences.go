package config

// Preferences is the durable key/value backend used by Settings.
// fyne.Preferences satisfies it, as does storage.SQLite.
type Preferences interface {
	StringWithFallback(key, fallback string) string
	SetString(key, value string)
	RemoveValue(key string)
}

// Storage namespaces
const (
	PlayerNamespace = "audiobook-player"
	ReaderNamespace = "book-pdf-reader"
)

// Key suffixes appended to a namespace as "<namespace>-<suffix>"
const (
	SuffixVolume = "volume"
	SuffixRate   = "rate"
	SuffixPage   = "page"
	SuffixMode   = "mode"
	SuffixScale  = "scale"
)

// KeyLanguage is stored without a namespace
const KeyLanguage = "app_language"
