package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/i18n"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/navigator"
	"github.com/ytget/audiobook-reader/internal/transport"
)

// PlayerView is the Listen tab: chapter list, transport controls and status
type PlayerView struct {
	transport    *transport.Controller
	nav          *navigator.Navigator
	localization *i18n.Localization
	logger       *zap.Logger
	skip         float64

	cover         *canvas.Image
	chaptersLabel *widget.Label
	bookLabel     *widget.Label
	titleLabel    *widget.Label
	descLabel     *widget.Label
	posLabel      *widget.Label
	timeLabel     *widget.Label
	statusLabel   *widget.Label
	spinner       *widget.ProgressBarInfinite
	playBtn       *widget.Button
	prevBtn       *widget.Button
	nextBtn       *widget.Button
	backBtn       *widget.Button
	forwardBtn    *widget.Button
	muteBtn       *widget.Button
	seekSlider    *widget.Slider
	volumeSlider  *widget.Slider
	speedSelect   *widget.Select
	chapterList   *widget.List
	content       fyne.CanvasObject

	// updating suppresses widget callbacks while the view itself sets values
	updating     bool
	lastUIUpdate time.Time
	unsubscribe  []func()
}

// NewPlayerView builds the player and subscribes it to the store and transport status
func NewPlayerView(ctrl *transport.Controller, nav *navigator.Navigator, localization *i18n.Localization, skip float64, logger *zap.Logger) *PlayerView {
	if skip <= 0 {
		skip = transport.DefaultSkip
	}
	pv := &PlayerView{
		transport:    ctrl,
		nav:          nav,
		localization: localization,
		logger:       logging.OrNop(logger),
		skip:         skip,
	}
	pv.setupUI()

	pv.unsubscribe = append(pv.unsubscribe,
		ctrl.Store().Subscribe(pv.onStoreChange),
		ctrl.OnStatus(pv.renderStatus),
	)
	pv.render(ctrl.Store().Snapshot())
	pv.renderStatus(ctrl.Status())
	return pv
}

// Content returns the view's canvas object
func (pv *PlayerView) Content() fyne.CanvasObject {
	return pv.content
}

// Close detaches the view from the store and the transport
func (pv *PlayerView) Close() {
	for _, unsub := range pv.unsubscribe {
		unsub()
	}
	pv.unsubscribe = nil
}

func (pv *PlayerView) setupUI() {
	catalog := pv.nav.Catalog()

	pv.cover = canvas.NewImageFromResource(theme.MediaMusicIcon())
	pv.cover.FillMode = canvas.ImageFillContain
	pv.cover.SetMinSize(fyne.NewSize(CoverSize, CoverSize))
	if res, err := LoadImageResource(catalog.CoverImage); err == nil {
		pv.cover.Resource = res
	} else {
		pv.logger.Debug("cover image unavailable", zap.String("ref", catalog.CoverImage), zap.Error(err))
	}

	pv.bookLabel = widget.NewLabelWithStyle(catalog.Title+MiddleDotSeparator+catalog.Author, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	pv.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	pv.titleLabel.Wrapping = fyne.TextWrapWord
	pv.descLabel = widget.NewLabel("")
	pv.descLabel.Wrapping = fyne.TextWrapWord
	pv.posLabel = widget.NewLabel("")
	pv.timeLabel = widget.NewLabel("")
	pv.statusLabel = widget.NewLabel("")
	pv.spinner = widget.NewProgressBarInfinite()
	pv.spinner.Hide()

	pv.seekSlider = widget.NewSlider(0, 1)
	pv.seekSlider.Step = SeekSliderStep
	pv.seekSlider.OnChangeEnded = func(v float64) {
		if !pv.updating {
			pv.transport.Seek(v)
		}
	}

	pv.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), pv.transport.TogglePlayPause)
	pv.playBtn.Importance = widget.HighImportance
	pv.prevBtn = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), func() { pv.nav.GoToPrevious() })
	pv.nextBtn = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() { pv.nav.GoToNext() })
	pv.backBtn = widget.NewButtonWithIcon("", theme.MediaFastRewindIcon(), func() { pv.transport.SkipBackward(pv.skip) })
	pv.forwardBtn = widget.NewButtonWithIcon("", theme.MediaFastForwardIcon(), func() { pv.transport.SkipForward(pv.skip) })
	pv.muteBtn = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), pv.transport.ToggleMute)
	pv.muteBtn.Importance = widget.LowImportance

	pv.volumeSlider = widget.NewSlider(model.MinVolume, model.MaxVolume)
	pv.volumeSlider.Step = VolumeSliderStep
	pv.volumeSlider.OnChanged = func(v float64) {
		if !pv.updating {
			pv.transport.SetVolume(v)
		}
	}

	rates := make([]string, len(model.PlaybackRates))
	for i, r := range model.PlaybackRates {
		rates[i] = model.FormatRate(r)
	}
	pv.speedSelect = widget.NewSelect(rates, func(label string) {
		if pv.updating {
			return
		}
		for _, r := range model.PlaybackRates {
			if model.FormatRate(r) == label {
				pv.transport.SetPlaybackRate(r)
				return
			}
		}
	})

	pv.chapterList = widget.NewList(
		func() int { return catalog.Len() },
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ch, ok := catalog.At(id)
			if !ok {
				return
			}
			label := obj.(*widget.Label)
			label.TextStyle.Bold = ch.ID == pv.transport.Store().Snapshot().CurrentChapter.ID()
			label.SetText(ch.Title)
		},
	)
	// A click on a row is a direct play gesture; prev/next only browse.
	pv.chapterList.OnSelected = func(id widget.ListItemID) {
		if pv.updating {
			return
		}
		if ch, ok := catalog.At(id); ok {
			pv.transport.Store().PlayChapter(ch)
		}
	}

	header := container.NewBorder(nil, nil, pv.cover, nil,
		container.NewVBox(pv.bookLabel, pv.titleLabel, pv.posLabel))
	controls := container.NewHBox(pv.prevBtn, pv.backBtn, pv.playBtn, pv.forwardBtn, pv.nextBtn)
	seekRow := container.NewBorder(nil, nil, nil, pv.timeLabel, pv.seekSlider)
	volumeRow := container.NewBorder(nil, nil, pv.muteBtn, pv.speedSelect, pv.volumeSlider)
	statusRow := container.NewBorder(nil, nil, nil, nil, container.NewVBox(pv.statusLabel, pv.spinner))

	details := container.NewVBox(
		header,
		widget.NewSeparator(),
		pv.descLabel,
		seekRow,
		container.NewCenter(controls),
		volumeRow,
		statusRow,
	)

	pv.chaptersLabel = widget.NewLabelWithStyle(pv.localization.GetText(i18n.KeyChapters), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	listWidth := canvas.NewRectangle(color.Transparent)
	listWidth.SetMinSize(fyne.NewSize(ChapterListMinW, 0))
	chapters := container.NewBorder(pv.chaptersLabel, nil, nil, nil, container.NewStack(listWidth, pv.chapterList))
	split := container.NewHSplit(chapters, container.NewVScroll(details))
	split.Offset = 0.3
	pv.content = split
}

// onStoreChange re-renders the view. Position-only updates are debounced.
func (pv *PlayerView) onStoreChange(prev, next model.PlaybackState) {
	prev.CurrentTime = next.CurrentTime
	if prev == next && time.Since(pv.lastUIUpdate) < UIUpdateDebounce {
		return
	}
	pv.render(next)
}

func (pv *PlayerView) render(st model.PlaybackState) {
	pv.lastUIUpdate = time.Now()
	pv.updating = true
	defer func() { pv.updating = false }()

	pv.timeLabel.SetText(model.FormatTime(st.CurrentTime) + TimeSeparator + model.FormatTime(st.Duration))
	if model.IsKnownDuration(st.Duration) {
		pv.seekSlider.Max = st.Duration
	} else {
		pv.seekSlider.Max = 1
	}
	pv.seekSlider.Value = model.ClampPosition(st.CurrentTime, pv.seekSlider.Max)
	pv.seekSlider.Refresh()

	if st.IsPlaying {
		pv.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		pv.playBtn.SetIcon(theme.MediaPlayIcon())
	}
	if st.Volume == 0 {
		pv.muteBtn.SetIcon(theme.VolumeMuteIcon())
	} else {
		pv.muteBtn.SetIcon(theme.VolumeUpIcon())
	}
	pv.volumeSlider.Value = st.Volume
	pv.volumeSlider.Refresh()
	pv.speedSelect.SetSelected(model.FormatRate(st.PlaybackRate))

	if ch := st.CurrentChapter.Chapter; ch != nil {
		pv.titleLabel.SetText(ch.Title)
		pv.descLabel.SetText(ch.Description)
		pv.posLabel.SetText(pv.localization.Textf(i18n.KeyChapterPosition, pv.nav.Index()+1, pv.nav.Total()))
		if idx := pv.nav.Index(); idx >= 0 {
			pv.chapterList.Select(idx)
		}
	} else {
		pv.titleLabel.SetText(pv.localization.GetText(i18n.KeyNoChapter))
		pv.descLabel.SetText("")
		pv.posLabel.SetText(DashPlaceholder)
		pv.chapterList.UnselectAll()
	}
	setEnabled(pv.prevBtn, pv.nav.HasPrevious())
	setEnabled(pv.nextBtn, pv.nav.HasNext())
	pv.chapterList.Refresh()
}

// renderStatus shows loading, buffering and error advisories
func (pv *PlayerView) renderStatus(status transport.Status) {
	var text string
	switch {
	case status.HasError() && status.Advisory != nil && status.Advisory.Visible:
		text = pv.localization.GetText(status.Advisory.MessageKey)
	case status.BufferingVisible:
		text = pv.localization.GetText(i18n.KeyBufferingTitle)
	case status.Loading:
		text = pv.localization.GetText(i18n.KeyLoading)
	}
	pv.statusLabel.SetText(text)
	if status.Loading || status.BufferingVisible {
		pv.spinner.Show()
	} else {
		pv.spinner.Hide()
	}
}

// RefreshTexts re-renders localized strings after a language change
func (pv *PlayerView) RefreshTexts() {
	pv.chaptersLabel.SetText(pv.localization.GetText(i18n.KeyChapters))
	pv.render(pv.transport.Store().Snapshot())
	pv.renderStatus(pv.transport.Status())
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}
