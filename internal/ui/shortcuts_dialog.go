package ui

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/audiobook-reader/internal/i18n"
)

// shortcut is one row of the shortcuts dialog
type shortcut struct {
	keys       []string
	text       string
	singleOnly bool
}

// ShortcutsDialog lists the player and reader key bindings
type ShortcutsDialog struct {
	localization *i18n.Localization
	window       fyne.Window
	skipSeconds  int

	dialog  *dialog.CustomDialog
	content *fyne.Container
}

// NewShortcutsDialog creates the dialog; skip is the keyboard seek step in seconds
func NewShortcutsDialog(localization *i18n.Localization, skip float64, window fyne.Window) *ShortcutsDialog {
	sd := &ShortcutsDialog{
		localization: localization,
		window:       window,
		skipSeconds:  int(math.Round(skip)),
	}
	sd.createUI()
	return sd
}

// Show displays the dialog
func (sd *ShortcutsDialog) Show() {
	sd.dialog.Show()
}

func (sd *ShortcutsDialog) createUI() {
	sd.content = container.NewVBox()
	sd.addSection(i18n.KeyListen, sd.playerShortcuts())
	sd.content.Add(widget.NewSeparator())
	sd.addSection(i18n.KeyRead, sd.readerShortcuts())

	sd.dialog = dialog.NewCustom(
		sd.localization.GetText(i18n.KeyShortcuts),
		sd.localization.GetText(i18n.KeyClose),
		container.NewVScroll(sd.content),
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(420, 480))
}

func (sd *ShortcutsDialog) playerShortcuts() []shortcut {
	l := sd.localization
	return []shortcut{
		{keys: []string{"Space", "K"}, text: l.GetText(i18n.KeyPlayPause)},
		{keys: []string{"←", "J"}, text: l.Textf(i18n.KeySkipBackward, sd.skipSeconds)},
		{keys: []string{"→", "L"}, text: l.Textf(i18n.KeySkipForward, sd.skipSeconds)},
		{keys: []string{"↑"}, text: l.GetText(i18n.KeyVolumeUp)},
		{keys: []string{"↓"}, text: l.GetText(i18n.KeyVolumeDown)},
		{keys: []string{"M"}, text: l.GetText(i18n.KeyMute)},
	}
}

// readerShortcuts take precedence over the player's while the Read tab is shown
func (sd *ShortcutsDialog) readerShortcuts() []shortcut {
	l := sd.localization
	return []shortcut{
		{keys: []string{"←", "Page Up"}, text: l.GetText(i18n.KeyPrevPage), singleOnly: true},
		{keys: []string{"→", "Page Down", "Space"}, text: l.GetText(i18n.KeyNextPage), singleOnly: true},
		{keys: []string{"Home"}, text: l.GetText(i18n.KeyFirstPage), singleOnly: true},
		{keys: []string{"End"}, text: l.GetText(i18n.KeyLastPage), singleOnly: true},
		{keys: []string{"F11"}, text: l.GetText(i18n.KeyFullscreen)},
	}
}

func (sd *ShortcutsDialog) addSection(titleKey string, rows []shortcut) {
	sd.content.Add(widget.NewLabelWithStyle(sd.localization.GetText(titleKey), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, s := range rows {
		sd.content.Add(sd.row(s))
	}
}

func (sd *ShortcutsDialog) row(s shortcut) fyne.CanvasObject {
	var desc fyne.CanvasObject = widget.NewLabel(s.text)
	if s.singleOnly {
		note := widget.NewLabelWithStyle(sd.localization.GetText(i18n.KeySingleModeOnly), fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		note.Importance = widget.LowImportance
		desc = container.NewVBox(desc, note)
	}

	keys := container.NewHBox()
	for i, key := range s.keys {
		if i > 0 {
			keys.Add(widget.NewLabel(sd.localization.GetText(i18n.KeyOr)))
		}
		keys.Add(widget.NewLabelWithStyle(key, fyne.TextAlignCenter, fyne.TextStyle{Monospace: true, Bold: true}))
	}
	return container.NewBorder(nil, nil, nil, keys, desc)
}
