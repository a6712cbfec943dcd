package ui

import (
	"strings"

	"fyne.io/fyne/v2"
)

// LoadImageResource loads a cover image from a URL or a local path
func LoadImageResource(ref string) (fyne.Resource, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return fyne.LoadResourceFromURLString(ref)
	}
	return fyne.LoadResourceFromPath(ref)
}
