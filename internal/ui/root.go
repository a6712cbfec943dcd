package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/i18n"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/navigator"
	"github.com/ytget/audiobook-reader/internal/notify"
	"github.com/ytget/audiobook-reader/internal/transport"
)

// Dependencies are the controllers and services the UI drives
type Dependencies struct {
	Settings     *config.Settings
	Localization *i18n.Localization
	Transport    *transport.Controller
	Navigator    *navigator.Navigator
	Notifier     *notify.Center
	Reader       ReaderOptions
	SkipInterval float64
	Logger       *zap.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *i18n.Localization
	transport    *transport.Controller
	logger       *zap.Logger

	player    *PlayerView
	reader    *ReaderView
	toasts    *ToastPanel
	tabs      *container.AppTabs
	listenTab *container.TabItem
	readTab   *container.TabItem
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, deps Dependencies) *RootUI {
	ui := &RootUI{
		window:       window,
		settings:     deps.Settings,
		localization: deps.Localization,
		transport:    deps.Transport,
		logger:       logging.OrNop(deps.Logger),
	}

	deps.Notifier.SetTranslator(ui.localization.GetText)

	ui.player = NewPlayerView(deps.Transport, deps.Navigator, deps.Localization, deps.SkipInterval, deps.Logger)

	readerOpts := deps.Reader
	readerOpts.Window = window
	readerOpts.Localization = deps.Localization
	readerOpts.Notifier = deps.Notifier
	if readerOpts.Logger == nil {
		readerOpts.Logger = deps.Logger
	}
	ui.reader = NewReaderView(readerOpts)
	ui.toasts = NewToastPanel(deps.Notifier)

	window.SetTitle(ui.localization.GetText(i18n.KeyAppTitle))
	ui.setupUI()
	ui.reader.Load()

	ui.logger.Debug("ui setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.listenTab = container.NewTabItem(IconHeadset+" "+ui.localization.GetText(i18n.KeyListen), ui.player.Content())
	ui.readTab = container.NewTabItem(IconBook+" "+ui.localization.GetText(i18n.KeyRead), ui.reader.Content())
	ui.tabs = container.NewAppTabs(ui.listenTab, ui.readTab)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	shortcutsBtn := widget.NewButtonWithIcon("", theme.HelpIcon(), ui.onShowShortcuts)
	shortcutsBtn.Importance = widget.LowImportance

	content := container.NewBorder(
		container.NewBorder(nil, nil, nil, container.NewHBox(shortcutsBtn, settingsBtn), ui.toasts.Container()),
		nil,
		nil,
		nil,
		ui.tabs,
	)
	ui.window.SetContent(content)
	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(i18n.KeySettings), ui.onShowSettings)
	shortcutsItem := fyne.NewMenuItem(ui.localization.GetText(i18n.KeyShortcuts), ui.onShowShortcuts)

	languageMenu := fyne.NewMenu(ui.localization.GetText(i18n.KeyLanguage))

	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(i18n.KeyAppTitle), settingsItem, shortcutsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onTypedKey routes shortcuts: the reader gets first pick while it is shown
func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	inTextInput := false
	if focused := ui.window.Canvas().Focused(); focused != nil {
		_, inTextInput = focused.(*widget.Entry)
	}

	if ui.tabs.Selected() == ui.readTab && ui.reader.Controller().HandleKey(ev.Name, inTextInput) {
		return
	}
	ui.transport.HandleKey(ev.Name, inTextInput)
}

// onShowSettings displays the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applyLanguage).Show()
}

// onShowShortcuts displays the key bindings in the current language
func (ui *RootUI) onShowShortcuts() {
	NewShortcutsDialog(ui.localization, ui.transport.KeyboardSkip(), ui.window).Show()
}

// onLanguageChange handles language change from the menu
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.settings.SetLanguage(langCode)
	ui.applyLanguage(langCode)
}

func (ui *RootUI) applyLanguage(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(i18n.KeyAppTitle))
	ui.listenTab.Text = IconHeadset + " " + ui.localization.GetText(i18n.KeyListen)
	ui.readTab.Text = IconBook + " " + ui.localization.GetText(i18n.KeyRead)
	ui.tabs.Refresh()
	ui.player.RefreshTexts()
	ui.reader.RefreshTexts()
}

// Close detaches the views from the controllers
func (ui *RootUI) Close() {
	ui.player.Close()
	ui.reader.Close()
}
