package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/i18n"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *i18n.Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onLanguage   func(string)

	// UI components
	languageSelect *widget.Select
	languageCodes  []string
}

// NewSettingsDialog creates a new settings dialog. onLanguage is called with
// the chosen language code after it has been saved.
func NewSettingsDialog(settings *config.Settings, localization *i18n.Localization, window fyne.Window, onLanguage func(string)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onLanguage:   onLanguage,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	options := sd.settings.GetLanguageOptions()
	for code := range options {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)

	labels := make([]string, len(sd.languageCodes))
	for i, code := range sd.languageCodes {
		labels[i] = options[code]
	}
	sd.languageSelect = widget.NewSelect(labels, nil)

	form := container.NewVBox(
		widget.NewLabel(IconLanguage+" "+sd.localization.GetText(i18n.KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(i18n.KeySettings),
		sd.localization.GetText(i18n.KeySave),
		sd.localization.GetText(i18n.KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(360, 200))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	current := sd.settings.GetLanguage()
	for i, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelectedIndex(i)
			return
		}
	}
	sd.languageSelect.ClearSelected()
}

// selectedLanguage returns the code of the selected option, or "" if none
func (sd *SettingsDialog) selectedLanguage() string {
	idx := sd.languageSelect.SelectedIndex()
	if idx < 0 || idx >= len(sd.languageCodes) {
		return ""
	}
	return sd.languageCodes[idx]
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	lang := sd.selectedLanguage()
	if lang == "" {
		return
	}
	sd.settings.SetLanguage(lang)
	if sd.onLanguage != nil {
		sd.onLanguage(lang)
	}

	dialog.ShowInformation(sd.localization.GetText(i18n.KeySettings), sd.localization.GetText(i18n.KeySettingsSaved), sd.window)
}
