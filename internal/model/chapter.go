package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is returned when a catalog breaks the ordering contract
var ErrInvalidCatalog = errors.New("invalid chapter catalog")

// Chapter is one entry of the static audiobook catalog
type Chapter struct {
	ID          int    `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	AudioURL    string `toml:"audio_url" json:"audio_url"`
	CoverImage  string `toml:"cover_image" json:"cover_image"`
}

// Catalog is the ordered, read-only list of chapters for one book
type Catalog struct {
	Title      string    `toml:"title" json:"title"`
	Author     string    `toml:"author" json:"author"`
	CoverImage string    `toml:"cover_image" json:"cover_image"`
	Chapters   []Chapter `toml:"chapters" json:"chapters"`
}

// Len returns the number of chapters
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Chapters)
}

// IndexOf returns the 0-based position of the chapter with the given id, or -1
func (c *Catalog) IndexOf(id int) int {
	if c == nil {
		return -1
	}
	for i := range c.Chapters {
		if c.Chapters[i].ID == id {
			return i
		}
	}
	return -1
}

// ChapterByID returns a copy of the chapter with the given id
func (c *Catalog) ChapterByID(id int) (Chapter, bool) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return Chapter{}, false
	}
	return c.Chapters[idx], true
}

// At returns a copy of the chapter at index i
func (c *Catalog) At(i int) (Chapter, bool) {
	if c == nil || i < 0 || i >= len(c.Chapters) {
		return Chapter{}, false
	}
	return c.Chapters[i], true
}

// First returns the first chapter of the catalog
func (c *Catalog) First() (Chapter, bool) {
	return c.At(0)
}

// Validate checks that ids are unique, 1-based and dense in catalog order and
// that every chapter has an audio source.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Chapters) == 0 {
		return fmt.Errorf("%w: no chapters", ErrInvalidCatalog)
	}

	seen := make(map[int]struct{}, len(c.Chapters))
	for i, ch := range c.Chapters {
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("%w: duplicate chapter id %d", ErrInvalidCatalog, ch.ID)
		}
		seen[ch.ID] = struct{}{}

		if ch.ID != i+1 {
			return fmt.Errorf("%w: chapter at position %d has id %d, expected %d", ErrInvalidCatalog, i+1, ch.ID, i+1)
		}
		if strings.TrimSpace(ch.AudioURL) == "" {
			return fmt.Errorf("%w: chapter %d has no audio url", ErrInvalidCatalog, ch.ID)
		}
	}
	return nil
}
