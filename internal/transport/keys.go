package transport

import (
	"math"

	"fyne.io/fyne/v2"
)

// HandleKey applies the player keyboard shortcuts. Keys typed into a text
// input are ignored. It returns true when the key was consumed.
func (c *Controller) HandleKey(key fyne.KeyName, inTextInput bool) bool {
	if !c.active() || inTextInput {
		return false
	}

	switch key {
	case fyne.KeySpace, fyne.KeyK:
		c.TogglePlayPause()
	case fyne.KeyJ, fyne.KeyLeft:
		c.SkipBackward(c.keyboardSkip)
	case fyne.KeyL, fyne.KeyRight:
		c.SkipForward(c.keyboardSkip)
	case fyne.KeyM:
		c.ToggleMute()
	case fyne.KeyUp:
		c.SetVolume(roundVolume(c.store.Snapshot().Volume + VolumeStep))
	case fyne.KeyDown:
		c.SetVolume(roundVolume(c.store.Snapshot().Volume - VolumeStep))
	default:
		return false
	}
	return true
}

func roundVolume(v float64) float64 {
	return math.Round(v*100) / 100
}
