package ui

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/eventloop"
	"github.com/ytget/audiobook-reader/internal/i18n"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/notify"
	"github.com/ytget/audiobook-reader/internal/platform"
	"github.com/ytget/audiobook-reader/internal/reader"
)

var readingModes = []model.ReadingMode{model.ReadingModeSingle, model.ReadingModeContinuous}

// ReaderOptions configures a ReaderView
type ReaderOptions struct {
	Window       fyne.Window
	Settings     *config.Settings
	Pages        reader.PageRenderer
	Book         config.Book
	Localization *i18n.Localization
	Notifier     *notify.Center
	Client       *http.Client
	Logger       *zap.Logger

	// Dispatch runs render results on the UI goroutine; fyne.Do when nil
	Dispatch eventloop.Dispatcher
}

// ReaderView is the Read tab: the page toolbar and the page area
type ReaderView struct {
	ctrl         *reader.Controller
	pages        reader.PageRenderer
	window       fyne.Window
	book         config.Book
	localization *i18n.Localization
	notifier     *notify.Center
	client       *http.Client
	logger       *zap.Logger
	dispatch     eventloop.Dispatcher

	pageEntry     *widget.Entry
	pageLabel     *widget.Label
	zoomLabel     *widget.Label
	statusLabel   *widget.Label
	modeSelect    *widget.Select
	prevBtn       *widget.Button
	nextBtn       *widget.Button
	firstBtn      *widget.Button
	lastBtn       *widget.Button
	zoomInBtn     *widget.Button
	zoomOutBtn    *widget.Button
	resetZoomBtn  *widget.Button
	fullscreenBtn *widget.Button
	downloadBtn   *widget.Button
	pageBox       *fyne.Container
	scroll        *container.Scroll
	content       fyne.CanvasObject

	canvases map[int]*pageCanvas
	renders  *errgroup.Group
	ctx      context.Context
	cancel   context.CancelFunc
	updating bool
}

// pageCanvas is the image for one page. gen increases with every size change
// so a slow render cannot replace a newer one.
type pageCanvas struct {
	img  *canvas.Image
	size reader.Size
	gen  atomic.Uint64
}

// NewReaderView builds the reader and its controller
func NewReaderView(opts ReaderOptions) *ReaderView {
	ctx, cancel := context.WithCancel(context.Background())
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = fyne.Do
	}
	renders := &errgroup.Group{}
	renders.SetLimit(PageRenderWorkers)
	rv := &ReaderView{
		pages:        opts.Pages,
		window:       opts.Window,
		book:         opts.Book,
		localization: opts.Localization,
		notifier:     opts.Notifier,
		client:       opts.Client,
		logger:       logging.OrNop(opts.Logger),
		dispatch:     dispatch,
		canvases:     make(map[int]*pageCanvas),
		renders:      renders,
		ctx:          ctx,
		cancel:       cancel,
	}

	rv.pageBox = container.New(layout.NewCustomPaddedVBoxLayout(PageSpacing))
	rv.scroll = container.NewScroll(container.NewCenter(rv.pageBox))
	rv.scroll.OnScrolled = rv.onScrolled

	rv.ctrl = reader.New(reader.Options{
		Settings:   opts.Settings,
		Frames:     eventloop.NewFrames(eventloop.NewClock(dispatch)),
		Surface:    &scrollSurface{scroll: rv.scroll},
		Fullscreen: NewWindowFullscreen(opts.Window),
		Logger:     opts.Logger,
	})
	rv.setupUI()
	rv.ctrl.SetUpdateCallback(rv.render)
	rv.ctrl.Mount()
	rv.render(rv.ctrl.State())
	return rv
}

// Controller returns the reader state machine behind the view
func (rv *ReaderView) Controller() *reader.Controller {
	return rv.ctrl
}

// Content returns the view's canvas object
func (rv *ReaderView) Content() fyne.CanvasObject {
	return rv.content
}

// Load asks the page renderer for the page count in the background
func (rv *ReaderView) Load() {
	if rv.pages == nil {
		rv.statusLabel.SetText(rv.localization.GetText(i18n.KeyDocumentError))
		return
	}
	rv.statusLabel.SetText(rv.localization.GetText(i18n.KeyLoadingDoc))
	go func() {
		n, err := rv.pages.NumPages(rv.ctx)
		rv.dispatch(func() {
			if err != nil {
				rv.logger.Error("document load failed", zap.Error(err))
				rv.statusLabel.SetText(rv.localization.GetText(i18n.KeyDocumentError))
				rv.notifier.Error(i18n.KeyDocumentError, "")
				return
			}
			rv.statusLabel.SetText("")
			rv.ctrl.SetNumPages(n)
		})
	}()
}

// Close stops rendering and releases the controller
func (rv *ReaderView) Close() {
	rv.cancel()
	rv.ctrl.Close()
}

func (rv *ReaderView) setupUI() {
	rv.pageEntry = widget.NewEntry()
	rv.pageEntry.SetPlaceHolder(rv.localization.GetText(i18n.KeyPage))
	rv.pageEntry.OnSubmitted = rv.onPageSubmitted
	rv.pageLabel = widget.NewLabel("")
	rv.zoomLabel = widget.NewLabel("")
	rv.statusLabel = widget.NewLabel("")

	rv.modeSelect = widget.NewSelect(rv.modeLabels(), func(string) {
		if rv.updating {
			return
		}
		if idx := rv.modeSelect.SelectedIndex(); idx >= 0 && idx < len(readingModes) {
			rv.ctrl.SetReadingMode(readingModes[idx])
		}
	})

	rv.firstBtn = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), rv.ctrl.FirstPage)
	rv.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), rv.ctrl.GoToPrevPage)
	rv.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), rv.ctrl.GoToNextPage)
	rv.lastBtn = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), rv.ctrl.LastPage)
	rv.zoomOutBtn = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), rv.ctrl.ZoomOut)
	rv.zoomInBtn = widget.NewButtonWithIcon("", theme.ZoomInIcon(), rv.ctrl.ZoomIn)
	rv.resetZoomBtn = widget.NewButtonWithIcon("", theme.ZoomFitIcon(), rv.ctrl.ResetZoom)
	rv.fullscreenBtn = widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), rv.ctrl.ToggleFullscreen)
	rv.downloadBtn = widget.NewButtonWithIcon(rv.localization.GetText(i18n.KeyDownload), theme.DownloadIcon(), rv.onDownload)
	rv.downloadBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(
		rv.firstBtn, rv.prevBtn,
		container.NewGridWrap(fyne.NewSize(PageEntryWidth, rv.pageEntry.MinSize().Height), rv.pageEntry),
		rv.pageLabel, rv.nextBtn, rv.lastBtn,
		widget.NewSeparator(),
		rv.zoomOutBtn, rv.zoomLabel, rv.zoomInBtn, rv.resetZoomBtn,
		widget.NewSeparator(),
		rv.modeSelect,
		layout.NewSpacer(),
		rv.fullscreenBtn, rv.downloadBtn,
	)

	background := canvas.NewRectangle(theme.Color(ColorNamePage))
	pageArea := container.NewStack(background, NewTouchArea(rv.scroll, rv.ctrl))
	rv.content = container.NewBorder(container.NewVBox(toolbar, rv.statusLabel), nil, nil, nil, pageArea)
}

func (rv *ReaderView) modeLabels() []string {
	return []string{
		rv.localization.GetText(i18n.KeySinglePage),
		rv.localization.GetText(i18n.KeyContinuous),
	}
}

// render reflects the reader state in the toolbar and the page area
func (rv *ReaderView) render(st model.ReaderState) {
	rv.updating = true
	defer func() { rv.updating = false }()

	if page := strconv.Itoa(st.PageNumber); rv.pageEntry.Text != page {
		rv.pageEntry.SetText(page)
	}
	setEnabled(rv.pageEntry, st.NumPages > 0)
	rv.pageLabel.SetText(rv.localization.Textf(i18n.KeyOfPages, st.NumPages))
	rv.zoomLabel.SetText(fmt.Sprintf(ZoomLabelFormat, int(math.Round(st.Scale*100))))
	for i, mode := range readingModes {
		if mode == st.ReadingMode {
			rv.modeSelect.SetSelectedIndex(i)
		}
	}

	single := st.ReadingMode == model.ReadingModeSingle
	setEnabled(rv.firstBtn, single && st.PageNumber > 1)
	setEnabled(rv.prevBtn, single && st.PageNumber > 1)
	setEnabled(rv.nextBtn, single && st.PageNumber < st.NumPages)
	setEnabled(rv.lastBtn, single && st.PageNumber < st.NumPages)
	setEnabled(rv.zoomOutBtn, st.Scale > model.MinScale)
	setEnabled(rv.zoomInBtn, st.Scale < model.MaxScale)

	if st.IsFullscreen {
		rv.fullscreenBtn.SetIcon(theme.ViewRestoreIcon())
	} else {
		rv.fullscreenBtn.SetIcon(theme.ViewFullScreenIcon())
	}

	rv.renderPages()
}

func (rv *ReaderView) renderPages() {
	if rv.pages == nil {
		return
	}
	size := rv.ctrl.PageSize(rv.viewport())
	slots := rv.ctrl.PagesToRender()
	objects := make([]fyne.CanvasObject, 0, len(slots))
	for _, slot := range slots {
		img := rv.pageImage(slot.Number, size)
		if slot.Hidden {
			img.Hide()
		} else {
			img.Show()
		}
		objects = append(objects, img)
	}
	rv.pageBox.Objects = objects
	rv.pageBox.Refresh()
}

// pageImage returns the canvas for page n and queues a render if its size changed
func (rv *ReaderView) pageImage(n int, size reader.Size) *canvas.Image {
	pc, ok := rv.canvases[n]
	if !ok {
		pc = &pageCanvas{img: &canvas.Image{FillMode: canvas.ImageFillContain}}
		rv.canvases[n] = pc
	}
	pc.img.SetMinSize(fyne.NewSize(float32(size.Width), float32(size.Height)))

	if pc.size != size {
		pc.size = size
		gen := pc.gen.Add(1)
		// Go blocks while all workers are busy, so queue from a goroutine.
		go rv.renders.Go(func() error {
			rv.renderPage(pc, gen, n, size)
			return nil
		})
	}
	return pc.img
}

func (rv *ReaderView) renderPage(pc *pageCanvas, gen uint64, n int, size reader.Size) {
	if pc.gen.Load() != gen || rv.ctx.Err() != nil {
		return
	}
	raster, err := rv.pages.RenderPage(rv.ctx, n, size)
	if err != nil {
		if rv.ctx.Err() == nil {
			rv.logger.Warn("page render failed", zap.Int("page", n), zap.Error(err))
		}
		return
	}
	rv.dispatch(func() {
		if pc.gen.Load() != gen {
			return
		}
		pc.img.Image = raster
		pc.img.Refresh()
	})
}

// onPageSubmitted jumps to the typed page; anything else restores the current one
func (rv *ReaderView) onPageSubmitted(text string) {
	if p, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		rv.ctrl.GoToPage(p)
	}
	rv.pageEntry.SetText(strconv.Itoa(rv.ctrl.State().PageNumber))
}

func (rv *ReaderView) viewport() reader.Viewport {
	win := rv.window.Canvas().Size()
	width := rv.scroll.Size().Width
	if width <= 0 {
		width = win.Width
	}
	return reader.Viewport{
		Width:          float64(win.Width),
		Height:         float64(win.Height),
		ContainerWidth: float64(width),
	}
}

func (rv *ReaderView) onScrolled(pos fyne.Position) {
	rv.ctrl.OnScroll(reader.ScrollMetrics{
		ScrollTop:    float64(pos.Y),
		ClientHeight: float64(rv.scroll.Size().Height),
		ScrollHeight: float64(rv.scroll.Content.MinSize().Height),
	})
}

// onDownload saves the document into the Downloads directory and reveals it
func (rv *ReaderView) onDownload() {
	rv.downloadBtn.Disable()
	go func() {
		path, err := rv.saveDocument()
		rv.dispatch(func() {
			rv.downloadBtn.Enable()
			if err != nil {
				rv.logger.Error("document download failed", zap.Error(err))
				rv.notifier.Error(i18n.KeyDownloadFailed, err.Error())
				return
			}
			rv.logger.Info("document saved", zap.String("path", path))
			rv.notifier.Success(i18n.KeyDownloadSaved, path)
			if err := platform.OpenFileInManager(path); err != nil {
				rv.logger.Debug("reveal document failed", zap.Error(err))
			}
		})
	}()
}

func (rv *ReaderView) saveDocument() (string, error) {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return "", err
	}
	return platform.SaveDocument(rv.ctx, rv.client, rv.book.DocumentURL, dir, rv.book.DownloadName)
}

// RefreshTexts re-renders localized strings after a language change
func (rv *ReaderView) RefreshTexts() {
	rv.updating = true
	rv.modeSelect.Options = rv.modeLabels()
	rv.modeSelect.ClearSelected()
	rv.updating = false
	rv.downloadBtn.SetText(rv.localization.GetText(i18n.KeyDownload))
	rv.pageEntry.SetPlaceHolder(rv.localization.GetText(i18n.KeyPage))
	rv.render(rv.ctrl.State())
}

// scrollSurface adapts the page scroll container to reader.Surface
type scrollSurface struct {
	scroll *container.Scroll
}

// LockScroll is a no-op: a fyne window has no page-level scroll to suppress
func (s *scrollSurface) LockScroll() {}

// UnlockScroll is a no-op, see LockScroll
func (s *scrollSurface) UnlockScroll() {}

// ScrollTo moves the page container to top
func (s *scrollSurface) ScrollTo(top float64) {
	s.scroll.Offset = fyne.NewPos(s.scroll.Offset.X, float32(top))
	s.scroll.Refresh()
}
