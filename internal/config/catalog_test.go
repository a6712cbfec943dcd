package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog returned error: %v", err)
	}
	if catalog.Len() != 25 {
		t.Fatalf("expected 25 chapters, got %d", catalog.Len())
	}
	if catalog.Title != "The Digital Community Manifesto" {
		t.Errorf("unexpected title %q", catalog.Title)
	}
	first, ok := catalog.First()
	if !ok || first.ID != 1 || first.Title != "Pre-Word" {
		t.Errorf("unexpected first chapter %+v", first)
	}
	last, ok := catalog.At(24)
	if !ok || last.ID != 25 {
		t.Errorf("unexpected last chapter %+v", last)
	}
}

func TestLoadCatalogEmptyPathUsesBundled(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if catalog.Len() == 0 {
		t.Fatal("expected bundled chapters")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `title = "Short Book"
author = "Someone"

[[chapters]]
id = 1
title = "One"
audio_url = "https://example.com/1.mp3"

[[chapters]]
id = 2
title = "Two"
audio_url = "https://example.com/2.mp3"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if catalog.Len() != 2 || catalog.Title != "Short Book" {
		t.Fatalf("unexpected catalog %+v", catalog)
	}
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", `title = "Nothing"`},
		{"gap in ids", `
[[chapters]]
id = 1
title = "One"
audio_url = "a.mp3"

[[chapters]]
id = 3
title = "Three"
audio_url = "c.mp3"
`},
		{"missing audio", `
[[chapters]]
id = 1
title = "One"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.content))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestParseCatalogRejectsUnknownFields(t *testing.T) {
	content := `
[[chapters]]
id = 1
title = "One"
audio_url = "a.mp3"
narrator = "Unknown"
`
	if _, err := ParseCatalog([]byte(content)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
