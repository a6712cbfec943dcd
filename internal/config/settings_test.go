package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/audiobook-reader/internal/model"
)

func newTestSettings(namespace string) (*Settings, Preferences) {
	app := test.NewApp()
	prefs := app.Preferences()
	return NewSettings(prefs, namespace), prefs
}

func TestNewSettings(t *testing.T) {
	settings, prefs := newTestSettings(PlayerNamespace)

	if settings.prefs != prefs {
		t.Error("Settings preferences reference should match provided backend")
	}
	if settings.Namespace() != PlayerNamespace {
		t.Errorf("Expected namespace %s, got %s", PlayerNamespace, settings.Namespace())
	}
}

func TestKey(t *testing.T) {
	settings, _ := newTestSettings(ReaderNamespace)

	tests := []struct {
		suffix   string
		expected string
	}{
		{SuffixPage, "book-pdf-reader-page"},
		{SuffixMode, "book-pdf-reader-mode"},
		{SuffixScale, "book-pdf-reader-scale"},
	}

	for _, tt := range tests {
		if got := settings.Key(tt.suffix); got != tt.expected {
			t.Errorf("Key(%q) = %q, want %q", tt.suffix, got, tt.expected)
		}
	}
}

func TestVolume(t *testing.T) {
	settings, prefs := newTestSettings(PlayerNamespace)

	// Test default value
	if v := settings.GetVolume(model.DefaultVolume); v != model.DefaultVolume {
		t.Errorf("Expected default volume %v, got %v", model.DefaultVolume, v)
	}

	// Test setting custom value
	settings.SetVolume(0.35)
	if v := settings.GetVolume(model.DefaultVolume); v != 0.35 {
		t.Errorf("Expected volume 0.35, got %v", v)
	}
	if raw := prefs.StringWithFallback("audiobook-player-volume", ""); raw != "0.35" {
		t.Errorf("Expected stored string 0.35, got %q", raw)
	}

	// Test boundary values
	settings.SetVolume(1.7)
	if v := settings.GetVolume(model.DefaultVolume); v != 1 {
		t.Errorf("Volume should be clamped to maximum 1, got %v", v)
	}
}

func TestFloatParsingFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback float64
		expected float64
	}{
		{"garbage", "loud", 0.6, 0.6},
		{"nan", "NaN", 0.6, 0.6},
		{"infinity", "+Inf", 0.6, 0.6},
		{"empty", "", 0.6, 0.6},
		{"negative clamps", "-2", 0.6, 0},
		{"valid", "0.25", 0.6, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, prefs := newTestSettings(PlayerNamespace)
			prefs.SetString(settings.Key(SuffixVolume), tt.raw)

			if got := settings.GetVolume(tt.fallback); got != tt.expected {
				t.Errorf("GetVolume() with %q = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestPlaybackRate(t *testing.T) {
	settings, prefs := newTestSettings(PlayerNamespace)

	if r := settings.GetPlaybackRate(model.DefaultPlaybackRate); r != 1 {
		t.Errorf("Expected default rate 1, got %v", r)
	}

	settings.SetPlaybackRate(1.5)
	if r := settings.GetPlaybackRate(model.DefaultPlaybackRate); r != 1.5 {
		t.Errorf("Expected rate 1.5, got %v", r)
	}

	// Unsupported stored values snap to the nearest legal rate
	prefs.SetString(settings.Key(SuffixRate), "1.9")
	if r := settings.GetPlaybackRate(model.DefaultPlaybackRate); r != 2 {
		t.Errorf("Expected rate snapped to 2, got %v", r)
	}
}

func TestPage(t *testing.T) {
	settings, prefs := newTestSettings(ReaderNamespace)

	if p := settings.GetPage(1); p != 1 {
		t.Errorf("Expected default page 1, got %d", p)
	}

	settings.SetPage(42)
	if p := settings.GetPage(1); p != 42 {
		t.Errorf("Expected page 42, got %d", p)
	}

	prefs.SetString(settings.Key(SuffixPage), "0")
	if p := settings.GetPage(7); p != 7 {
		t.Errorf("Page 0 should fall back to 7, got %d", p)
	}

	prefs.SetString(settings.Key(SuffixPage), "twelve")
	if p := settings.GetPage(7); p != 7 {
		t.Errorf("Unparsable page should fall back to 7, got %d", p)
	}
}

func TestReadingMode(t *testing.T) {
	settings, prefs := newTestSettings(ReaderNamespace)

	if m := settings.GetReadingMode(model.ReadingModeSingle); m != model.ReadingModeSingle {
		t.Errorf("Expected default mode single, got %s", m)
	}

	settings.SetReadingMode(model.ReadingModeContinuous)
	if m := settings.GetReadingMode(model.ReadingModeSingle); m != model.ReadingModeContinuous {
		t.Errorf("Expected mode continuous, got %s", m)
	}
	if raw := prefs.StringWithFallback("book-pdf-reader-mode", ""); raw != "continuous" {
		t.Errorf("Expected stored string continuous, got %q", raw)
	}

	prefs.SetString(settings.Key(SuffixMode), "scroll")
	if m := settings.GetReadingMode(model.ReadingModeSingle); m != model.ReadingModeSingle {
		t.Errorf("Unknown mode should fall back to single, got %s", m)
	}
}

func TestScale(t *testing.T) {
	settings, _ := newTestSettings(ReaderNamespace)

	if s := settings.GetScale(model.DefaultScale); s != 1 {
		t.Errorf("Expected default scale 1, got %v", s)
	}

	settings.SetScale(1.3)
	if s := settings.GetScale(model.DefaultScale); s != 1.3 {
		t.Errorf("Expected scale 1.3, got %v", s)
	}

	settings.SetScale(9)
	if s := settings.GetScale(model.DefaultScale); s != model.MaxScale {
		t.Errorf("Scale should be clamped to %v, got %v", model.MaxScale, s)
	}
}

func TestClear(t *testing.T) {
	settings, prefs := newTestSettings(ReaderNamespace)
	settings.SetPage(3)
	settings.SetScale(2)
	settings.SetLanguage("es")

	settings.Clear()

	if raw := prefs.StringWithFallback(settings.Key(SuffixPage), "missing"); raw != "missing" {
		t.Errorf("Expected page key removed, got %q", raw)
	}
	if lang := settings.GetLanguage(); lang != "es" {
		t.Errorf("Clear should keep the language, got %q", lang)
	}
}

func TestLanguage(t *testing.T) {
	settings, _ := newTestSettings(PlayerNamespace)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("es")
	if got := settings.GetLanguage(); got != "es" {
		t.Errorf("Expected language 'es', got %s", got)
	}

	settings.SetLanguage("")
	if got := settings.GetLanguage(); got != DefaultLanguage {
		t.Errorf("Empty language should reset to %s, got %s", DefaultLanguage, got)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings, _ := newTestSettings(PlayerNamespace)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "es"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
