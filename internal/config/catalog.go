package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/audiobook-reader/internal/model"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// ErrInvalidCatalog is returned for catalogs that fail validation
var ErrInvalidCatalog = model.ErrInvalidCatalog

// DefaultCatalog returns the catalog bundled with the application
func DefaultCatalog() (*model.Catalog, error) {
	return ParseCatalog(embeddedCatalog)
}

// LoadCatalog reads a catalog from path, or the bundled one when path is empty
func LoadCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML catalog
func ParseCatalog(data []byte) (*model.Catalog, error) {
	var catalog model.Catalog
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}
