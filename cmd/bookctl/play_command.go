package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/crossfade"
	"github.com/ytget/audiobook-reader/internal/eventloop"
	"github.com/ytget/audiobook-reader/internal/i18n"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/media/ebitenaudio"
	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/navigator"
	"github.com/ytget/audiobook-reader/internal/notify"
	"github.com/ytget/audiobook-reader/internal/storage"
	"github.com/ytget/audiobook-reader/internal/store"
	"github.com/ytget/audiobook-reader/internal/transport"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var chapterID int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the book in the terminal",
		Long:  "Play the book from the chosen chapter to the end.\n\n" + playerHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}

			start, ok := catalog.First()
			if chapterID != 0 {
				start, ok = catalog.ChapterByID(chapterID)
			}
			if !ok {
				return fmt.Errorf("chapter %d not in catalog", chapterID)
			}

			session := &playSession{
				cfg:     cfg,
				catalog: catalog,
				in:      cmd.InOrStdin(),
				out:     cmd.OutOrStdout(),
				logger:  ctx.loggerValue().With(zap.String(logging.FieldSession, uuid.NewString())),
			}
			return session.run(cmd.Context(), start)
		},
	}

	cmd.Flags().IntVar(&chapterID, "chapter", 0, "Chapter id to start from (default first chapter)")
	return cmd
}

// playSession owns the controllers of one headless listening session. All
// controller calls run on the loop goroutine.
type playSession struct {
	cfg     *config.App
	catalog *model.Catalog
	in      io.Reader
	out     io.Writer
	logger  *zap.Logger

	loop    *eventloop.Loop
	ctrl    *transport.Controller
	nav     *navigator.Navigator
	printer *progressPrinter
	stop    context.CancelFunc
}

func (s *playSession) run(parent context.Context, start model.Chapter) error {
	lock := flock.New(s.cfg.Storage.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire player lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another player is already running (lock %s)", s.cfg.Storage.LockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("release player lock", zap.Error(err))
		}
	}()

	db, err := storage.Open(s.cfg.Storage.DatabasePath, s.logger.Named("storage"))
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.stop = stop

	s.loop = eventloop.NewLoop()
	clock := eventloop.NewClock(s.loop.Dispatch)

	localization := i18n.NewLocalization()
	localization.SetLanguage(s.cfg.UI.Language)

	s.printer = newProgressPrinter(s.out)
	center := notify.NewCenter(clock, s.logger.Named("notify"))
	center.SetTranslator(localization.GetText)
	center.SetUpdateCallback(s.printer.onNotifications)
	defer center.Close()

	st := store.New(config.NewSettings(db, config.PlayerNamespace), s.logger.Named("store"))
	element := ebitenaudio.New(ebitenaudio.Options{
		SampleRate: s.cfg.Player.SampleRate,
		Client:     &http.Client{Timeout: ebitenaudio.DefaultFetchTimeout},
		Logger:     s.logger.Named("element"),
	})
	defer func() {
		if err := element.Close(); err != nil {
			s.logger.Warn("close media element", zap.Error(err))
		}
	}()

	s.ctrl = transport.New(element, st, transport.Options{
		Clock:          clock,
		Dispatch:       s.loop.Dispatch,
		Notifier:       center,
		Logger:         s.logger.Named("transport"),
		BufferingDelay: s.cfg.BufferingDelay(),
		KeyboardSkip:   s.cfg.KeyboardSkipInterval(),
	})
	s.nav = navigator.New(s.catalog, st, s.logger.Named("navigator"))
	fader := crossfade.New(element, st, s.ctrl, crossfade.Options{
		Clock:    clock,
		Steps:    s.cfg.Crossfade.Steps,
		Duration: s.cfg.CrossfadeDuration(),
		Logger:   s.logger.Named("crossfade"),
	})
	s.nav.SetFader(fader)
	s.ctrl.SetEndedHandler(s.onEnded)
	unsubscribe := st.Subscribe(s.printer.onStore)

	// Starting the command is the user gesture that allows playback.
	if err := s.loop.Post(func() {
		s.ctrl.Mount()
		st.PlayChapter(start)
	}); err != nil {
		return err
	}
	go s.readCommands(ctx)

	s.logger.Info("playback session started", zap.Int(logging.FieldChapterID, start.ID))
	err = s.loop.Run(ctx)

	unsubscribe()
	fader.Close()
	s.ctrl.Close()
	s.printer.endLine()
	s.logger.Info("playback session stopped")

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// onEnded advances to the next chapter and ends the session after the last one
func (s *playSession) onEnded() bool {
	if s.nav.AdvanceOnEnded() {
		return true
	}
	s.printer.println("End of book")
	s.stop()
	return false
}

func (s *playSession) readCommands(ctx context.Context) {
	if s.in == nil {
		return
	}
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		cmd, ok := parseCommand(scanner.Text())
		if !ok {
			_ = s.loop.Post(func() { s.printer.println("Unknown command, type h for help") })
			continue
		}
		if err := s.loop.Post(func() { s.apply(cmd) }); err != nil {
			return
		}
	}
}

func (s *playSession) apply(cmd playerCommand) {
	switch cmd.kind {
	case commandKey:
		s.ctrl.HandleKey(cmd.key, false)
	case commandNext:
		s.nav.GoToNext()
	case commandPrevious:
		s.nav.GoToPrevious()
	case commandChapter:
		if _, ok := s.catalog.ChapterByID(cmd.chapter); !ok {
			s.printer.println(fmt.Sprintf("No chapter %d", cmd.chapter))
			return
		}
		s.nav.GoToChapter(cmd.chapter)
	case commandHelp:
		s.printer.println(playerHelp)
	case commandQuit:
		s.stop()
	}
}
