package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/audiobook-reader/internal/i18n"
)

func labelTexts(obj fyne.CanvasObject) []string {
	var texts []string
	switch o := obj.(type) {
	case *widget.Label:
		texts = append(texts, o.Text)
	case *fyne.Container:
		for _, child := range o.Objects {
			texts = append(texts, labelTexts(child)...)
		}
	}
	return texts
}

func TestShortcutsDialogListsPlayerAndReaderKeys(t *testing.T) {
	w := test.NewApp().NewWindow("shortcuts")
	t.Cleanup(w.Close)

	sd := NewShortcutsDialog(i18n.NewLocalization(), 5, w)
	texts := labelTexts(sd.content)

	for _, want := range []string{
		"Listen", "Read",
		"Play or pause", "Back 5 s", "Forward 5 s", "Volume up", "Mute",
		"Previous page", "Next page", "First page", "Last page", "Fullscreen",
		"Page Down", "Home", "F11", "Single page mode only",
	} {
		assert.Contains(t, texts, want)
	}
}

func TestShortcutsDialogMarksSinglePageBindings(t *testing.T) {
	w := test.NewApp().NewWindow("shortcuts")
	t.Cleanup(w.Close)

	sd := NewShortcutsDialog(i18n.NewLocalization(), 5, w)
	notes := 0
	for _, text := range labelTexts(sd.content) {
		if text == "Single page mode only" {
			notes++
		}
	}
	assert.Equal(t, 4, notes, "F11 works in both modes")
}

func TestShortcutsDialogFollowsLanguage(t *testing.T) {
	w := test.NewApp().NewWindow("shortcuts")
	t.Cleanup(w.Close)

	l := i18n.NewLocalization()
	l.SetLanguage("es")
	sd := NewShortcutsDialog(l, 4.6, w)
	texts := labelTexts(sd.content)

	assert.Contains(t, texts, "Adelantar 5 s")
	assert.Contains(t, texts, "Página siguiente")
	assert.Contains(t, texts, "o")
}

func TestShortcutsDialogShow(t *testing.T) {
	w := test.NewApp().NewWindow("shortcuts")
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	t.Cleanup(w.Close)

	NewShortcutsDialog(i18n.NewLocalization(), 5, w).Show()
	assert.NotNil(t, w.Canvas().Overlays().Top())
}
