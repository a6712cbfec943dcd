package i18n

import "testing"

func TestGetTextFallsBackToEnglish(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("es")

	if got := l.GetText(KeyPlay); got != "Reproducir" {
		t.Errorf("Expected Spanish play label, got %q", got)
	}

	delete(l.texts["es"], KeyZoomIn)
	if got := l.GetText(KeyZoomIn); got != "Zoom in" {
		t.Errorf("Expected English fallback, got %q", got)
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key itself as final fallback, got %q", got)
	}
}

func TestSetLanguageIgnoresUnknown(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Unknown language should keep en, got %s", l.GetCurrentLanguage())
	}
}

func TestSetLanguageSystem(t *testing.T) {
	t.Setenv("LC_ALL", "es_MX.UTF-8")
	l := NewLocalization()
	l.SetLanguage("system")

	if l.GetCurrentLanguage() != "es" {
		t.Errorf("Expected system locale to resolve to es, got %s", l.GetCurrentLanguage())
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		locale   string
		expected string
	}{
		{"", "en"},
		{"C", "en"},
		{"en_US.UTF-8", "en"},
		{"es_ES.UTF-8", "es"},
		{"es-419", "es"},
		{"ja_JP", "en"},
	}

	for _, tt := range tests {
		if got := Match(tt.locale); got != tt.expected {
			t.Errorf("Match(%q) = %q, want %q", tt.locale, got, tt.expected)
		}
	}
}

func TestTextf(t *testing.T) {
	l := NewLocalization()

	if got := l.Textf(KeyChapterPosition, 3, 25); got != "Chapter 3 of 25" {
		t.Errorf("Textf() = %q", got)
	}
}

func TestTranslationsCoverSameKeys(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		if _, ok := l.texts["es"][key]; !ok {
			t.Errorf("Spanish translation missing key %s", key)
		}
	}
	if len(l.texts["en"]) != len(l.texts["es"]) {
		t.Errorf("Translation tables differ in size: en=%d es=%d", len(l.texts["en"]), len(l.texts["es"]))
	}
}
