package config

import (
	"math"
	"strconv"

	"github.com/ytget/audiobook-reader/internal/model"
)

// DefaultLanguage follows the operating system locale
const DefaultLanguage = "system"

// Settings reads and writes namespaced preferences. Values are stored as plain
// strings; getters fall back to the supplied value when a key is missing or
// cannot be parsed.
type Settings struct {
	prefs     Preferences
	namespace string
}

// NewSettings creates a settings view over prefs for one namespace
func NewSettings(prefs Preferences, namespace string) *Settings {
	return &Settings{prefs: prefs, namespace: namespace}
}

// Namespace returns the key prefix
func (s *Settings) Namespace() string {
	return s.namespace
}

// Key returns the full storage key for suffix
func (s *Settings) Key(suffix string) string {
	return s.namespace + "-" + suffix
}

// GetVolume returns the persisted volume clamped to [0,1]
func (s *Settings) GetVolume(fallback float64) float64 {
	return model.ClampVolume(s.float(SuffixVolume, fallback))
}

// SetVolume persists the volume
func (s *Settings) SetVolume(v float64) {
	s.setFloat(SuffixVolume, model.ClampVolume(v))
}

// GetPlaybackRate returns the persisted rate snapped to a supported value
func (s *Settings) GetPlaybackRate(fallback float64) float64 {
	return model.ClampPlaybackRate(s.float(SuffixRate, fallback))
}

// SetPlaybackRate persists the playback rate
func (s *Settings) SetPlaybackRate(r float64) {
	s.setFloat(SuffixRate, model.ClampPlaybackRate(r))
}

// GetPage returns the persisted page number; values below 1 are rejected
func (s *Settings) GetPage(fallback int) int {
	raw := s.prefs.StringWithFallback(s.Key(SuffixPage), "")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return fallback
	}
	return page
}

// SetPage persists the page number
func (s *Settings) SetPage(page int) {
	s.prefs.SetString(s.Key(SuffixPage), strconv.Itoa(page))
}

// GetReadingMode returns the persisted reading mode
func (s *Settings) GetReadingMode(fallback model.ReadingMode) model.ReadingMode {
	mode, ok := model.ParseReadingMode(s.prefs.StringWithFallback(s.Key(SuffixMode), ""))
	if !ok {
		return fallback
	}
	return mode
}

// SetReadingMode persists the reading mode
func (s *Settings) SetReadingMode(mode model.ReadingMode) {
	s.prefs.SetString(s.Key(SuffixMode), mode.String())
}

// GetScale returns the persisted zoom factor clamped to the legal range
func (s *Settings) GetScale(fallback float64) float64 {
	return model.ClampScale(s.float(SuffixScale, fallback))
}

// SetScale persists the zoom factor
func (s *Settings) SetScale(scale float64) {
	s.setFloat(SuffixScale, model.ClampScale(scale))
}

// Clear removes every key of this namespace
func (s *Settings) Clear() {
	for _, suffix := range []string{SuffixVolume, SuffixRate, SuffixPage, SuffixMode, SuffixScale} {
		s.prefs.RemoveValue(s.Key(suffix))
	}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.prefs.StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if lang == "" {
		lang = DefaultLanguage
	}
	s.prefs.SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
	}
}

func (s *Settings) float(suffix string, fallback float64) float64 {
	raw := s.prefs.StringWithFallback(s.Key(suffix), "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func (s *Settings) setFloat(suffix string, v float64) {
	s.prefs.SetString(s.Key(suffix), strconv.FormatFloat(v, 'g', -1, 64))
}
