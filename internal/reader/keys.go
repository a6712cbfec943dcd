package reader

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/audiobook-reader/internal/model"
)

// HandleKey applies the reader shortcuts and reports whether the key was
// consumed. Page keys only work in single mode; F11 works in both.
func (c *Controller) HandleKey(key fyne.KeyName, inTextInput bool) bool {
	if c.closed || inTextInput {
		return false
	}
	if key == fyne.KeyF11 {
		c.ToggleFullscreen()
		return true
	}
	if c.State().ReadingMode != model.ReadingModeSingle {
		return false
	}

	switch key {
	case fyne.KeyLeft, fyne.KeyPageUp:
		c.GoToPrevPage()
	case fyne.KeyRight, fyne.KeyPageDown, fyne.KeySpace:
		c.GoToNextPage()
	case fyne.KeyHome:
		c.FirstPage()
	case fyne.KeyEnd:
		c.LastPage()
	default:
		return false
	}
	return true
}
