package main

import (
	"fmt"
	"net/http"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/crossfade"
	"github.com/ytget/audiobook-reader/internal/eventloop"
	"github.com/ytget/audiobook-reader/internal/i18n"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/media/ebitenaudio"
	"github.com/ytget/audiobook-reader/internal/navigator"
	"github.com/ytget/audiobook-reader/internal/notify"
	"github.com/ytget/audiobook-reader/internal/reader"
	"github.com/ytget/audiobook-reader/internal/store"
	"github.com/ytget/audiobook-reader/internal/transport"
	"github.com/ytget/audiobook-reader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.audiobook-reader"
	AppName = "Audiobook Reader"
)

func main() {
	var configPath, catalogPath, pagesDir string

	cmd := &cobra.Command{
		Use:           "audiobook-reader",
		Short:         "Listen to and read the audiobook",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, catalogPath, pagesDir)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Chapter catalog TOML (overrides the configured one)")
	cmd.Flags().StringVar(&pagesDir, "pages", "", "Directory with one image per document page")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, catalogPath, pagesDir string) error {
	cfg, resolvedPath, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if catalogPath != "" {
		cfg.Book.CatalogPath = catalogPath
	}
	if pagesDir != "" {
		cfg.Book.PagesDir = pagesDir
	}

	logger, err := logging.NewFromConfig(cfg, "")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.With(zap.String("session", uuid.NewString()))
	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", version),
		zap.String("config", resolvedPath),
		zap.Bool("config_exists", exists),
	)

	catalog, err := config.LoadCatalog(cfg.Book.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	prefs := myApp.Preferences()
	playerSettings := config.NewSettings(prefs, config.PlayerNamespace)
	readerSettings := config.NewSettings(prefs, config.ReaderNamespace)

	localization := i18n.NewLocalization()
	lang := playerSettings.GetLanguage()
	if lang == config.DefaultLanguage {
		lang = cfg.UI.Language
	}
	localization.SetLanguage(lang)

	clock := eventloop.NewClock(fyne.Do)
	center := notify.NewCenter(clock, logger.Named("notify"))
	st := store.New(playerSettings, logger.Named("store"))

	client := &http.Client{Timeout: ebitenaudio.DefaultFetchTimeout}
	element := ebitenaudio.New(ebitenaudio.Options{
		SampleRate: cfg.Player.SampleRate,
		Client:     client,
		Logger:     logger.Named("element"),
	})

	ctrl := transport.New(element, st, transport.Options{
		Clock:          clock,
		Dispatch:       fyne.Do,
		Notifier:       center,
		Logger:         logger.Named("transport"),
		BufferingDelay: cfg.BufferingDelay(),
		KeyboardSkip:   cfg.KeyboardSkipInterval(),
	})
	nav := navigator.New(catalog, st, logger.Named("navigator"))
	fader := crossfade.New(element, st, ctrl, crossfade.Options{
		Clock:    clock,
		Steps:    cfg.Crossfade.Steps,
		Duration: cfg.CrossfadeDuration(),
		Logger:   logger.Named("crossfade"),
	})
	nav.SetFader(fader)
	ctrl.SetEndedHandler(nav.AdvanceOnEnded)

	ctrl.Mount()
	nav.SelectInitial()

	var pages reader.PageRenderer
	if cfg.Book.PagesDir != "" {
		pages = reader.NewImageDir(cfg.Book.PagesDir)
	}

	root := ui.NewRootUI(myWindow, ui.Dependencies{
		Settings:     playerSettings,
		Localization: localization,
		Transport:    ctrl,
		Navigator:    nav,
		Notifier:     center,
		Reader: ui.ReaderOptions{
			Settings: readerSettings,
			Pages:    pages,
			Book:     cfg.Book,
			Client:   client,
			Logger:   logger.Named("reader"),
		},
		SkipInterval: cfg.SkipInterval(),
		Logger:       logger.Named("ui"),
	})

	myApp.Lifecycle().SetOnStopped(func() {
		root.Close()
		fader.Close()
		ctrl.Close()
		center.Close()
		if err := element.Close(); err != nil {
			logger.Warn("close media element", zap.Error(err))
		}
		logger.Info("stopped")
	})

	myWindow.ShowAndRun()
	return nil
}
