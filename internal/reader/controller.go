package reader

import (
	"math"
	"sync"

	"fyne.io/fyne/v2/driver/mobile"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/eventloop"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/model"
)

// Options configures a Controller. Frames is required; its callbacks must run
// on the goroutine that calls the controller.
type Options struct {
	Settings   *config.Settings
	Frames     eventloop.Frames
	Surface    Surface
	Fullscreen Fullscreen
	Logger     *zap.Logger
}

// Controller is the document reader state machine
type Controller struct {
	mu       sync.Mutex
	state    model.ReaderState
	onUpdate func(model.ReaderState)

	settings   *config.Settings
	frames     eventloop.Frames
	surface    Surface
	fullscreen Fullscreen
	logger     *zap.Logger
	swipe      *SwipeDetector

	// restoredPage waits for the page count before it can be applied
	restoredPage int

	metrics ScrollMetrics
	frame   eventloop.Timer
	unsubFS func()
	mounted bool
	closed  bool
}

// New creates a reader, restoring page, mode and scale from settings
func New(opts Options) *Controller {
	c := &Controller{
		state:      model.NewReaderState(),
		settings:   opts.Settings,
		frames:     opts.Frames,
		surface:    opts.Surface,
		fullscreen: opts.Fullscreen,
		logger:     logging.OrNop(opts.Logger),
	}
	if c.frames == nil {
		panic("reader: Options.Frames is required")
	}
	if c.surface == nil {
		c.surface = nopSurface{}
	}
	c.swipe = NewSwipeDetector(c.onGesture)

	if s := c.settings; s != nil {
		c.restoredPage = s.GetPage(0)
		c.state.ReadingMode = s.GetReadingMode(c.state.ReadingMode)
		c.state.Scale = model.ClampScale(s.GetScale(c.state.Scale))
	}
	return c
}

// SetUpdateCallback sets the callback for state changes
func (c *Controller) SetUpdateCallback(callback func(model.ReaderState)) {
	c.mu.Lock()
	c.onUpdate = callback
	c.mu.Unlock()
}

// State returns a copy of the reader state
func (c *Controller) State() model.ReaderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount locks outer scrolling and starts following fullscreen changes
func (c *Controller) Mount() {
	if c.mounted || c.closed {
		return
	}
	c.mounted = true
	c.surface.LockScroll()
	if c.fullscreen != nil {
		c.unsubFS = c.fullscreen.OnChange(c.onFullscreenChange)
	}
}

// Close restores outer scrolling and cancels pending frame callbacks.
// It is idempotent.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.frame != nil {
		c.frame.Stop()
		c.frame = nil
	}
	if c.unsubFS != nil {
		c.unsubFS()
		c.unsubFS = nil
	}
	if c.mounted {
		c.surface.UnlockScroll()
	}
}

// SetNumPages records the page count reported by the rendering engine
func (c *Controller) SetNumPages(n int) {
	if c.closed || n < 0 {
		return
	}
	c.update(func(st *model.ReaderState) {
		st.NumPages = n
		if n > 0 && c.restoredPage > 0 {
			st.PageNumber = c.restoredPage
			c.restoredPage = 0
		}
		st.PageNumber = st.ClampPage(st.PageNumber)
	})
	c.logger.Debug("document loaded", zap.Int("pages", n))
}

// GoToPrevPage moves one page back, stopping at the first page
func (c *Controller) GoToPrevPage() {
	c.setPage(c.State().PageNumber - 1)
}

// GoToNextPage moves one page forward, stopping at the last page
func (c *Controller) GoToNextPage() {
	c.setPage(c.State().PageNumber + 1)
}

// FirstPage jumps to page 1
func (c *Controller) FirstPage() {
	c.setPage(1)
}

// LastPage jumps to the last page
func (c *Controller) LastPage() {
	c.setPage(c.State().LastPage())
}

// GoToPage jumps to page p. Pages outside [1, NumPages] are ignored. In
// continuous mode the container scrolls to the page.
func (c *Controller) GoToPage(p int) {
	if c.closed {
		return
	}
	st := c.State()
	if p < 1 || p > st.NumPages {
		return
	}
	c.setPage(p)
	if st.ReadingMode == model.ReadingModeContinuous {
		c.surface.ScrollTo(PageOffset(c.metrics, st.NumPages, p))
	}
}

// PagesToRender returns the pages the view should keep mounted
func (c *Controller) PagesToRender() []PageSlot {
	return Window(c.State())
}

// PageSize returns the page size for the viewport at the current zoom
func (c *Controller) PageSize(v Viewport) Size {
	st := c.State()
	return PageSize(v, st.Scale, st.IsFullscreen)
}

// OnScroll records the container metrics and recomputes the current page
// on the next frame. Only continuous mode follows the scroll position.
func (c *Controller) OnScroll(m ScrollMetrics) {
	if c.closed || c.State().ReadingMode != model.ReadingModeContinuous {
		return
	}
	c.metrics = m
	if c.frame != nil {
		return
	}
	c.frame = c.frames.RequestFrame(c.onFrame)
}

func (c *Controller) onFrame() {
	c.frame = nil
	if c.closed {
		return
	}
	st := c.State()
	if st.ReadingMode != model.ReadingModeContinuous {
		return
	}
	if page := PageAt(c.metrics, st.NumPages); page != 0 && page != st.PageNumber {
		c.update(func(s *model.ReaderState) { s.PageNumber = page })
	}
}

// SetReadingMode switches between single and continuous presentation
func (c *Controller) SetReadingMode(mode model.ReadingMode) {
	if c.closed || !mode.Valid() {
		return
	}
	if c.update(func(st *model.ReaderState) { st.ReadingMode = mode }) {
		if mode == model.ReadingModeSingle && c.frame != nil {
			c.frame.Stop()
			c.frame = nil
		}
		c.logger.Debug("reading mode changed", zap.String("mode", mode.String()))
	}
}

// ZoomIn increases the scale by one step
func (c *Controller) ZoomIn() {
	c.setScale(c.State().Scale + model.ScaleStep)
}

// ZoomOut decreases the scale by one step
func (c *Controller) ZoomOut() {
	c.setScale(c.State().Scale - model.ScaleStep)
}

// ResetZoom returns to 100%
func (c *Controller) ResetZoom() {
	c.setScale(model.DefaultScale)
}

// SetScale sets the zoom directly
func (c *Controller) SetScale(scale float64) {
	c.setScale(scale)
}

// ToggleFullscreen asks the platform to enter or leave fullscreen. The
// state follows the platform's change notification.
func (c *Controller) ToggleFullscreen() {
	if c.closed || c.fullscreen == nil {
		return
	}
	var err error
	if c.State().IsFullscreen {
		err = c.fullscreen.Exit()
	} else {
		err = c.fullscreen.Request()
	}
	if err != nil {
		c.logger.Warn("fullscreen request failed", zap.Error(err))
	}
}

// TouchDown forwards a touch to the swipe detector in single mode
func (c *Controller) TouchDown(event *mobile.TouchEvent) {
	if c.closed || c.State().ReadingMode != model.ReadingModeSingle {
		return
	}
	c.swipe.TouchDown(event)
}

// TouchUp forwards a touch to the swipe detector in single mode
func (c *Controller) TouchUp(event *mobile.TouchEvent) {
	if c.closed || c.State().ReadingMode != model.ReadingModeSingle {
		return
	}
	c.swipe.TouchUp(event)
}

// TouchCancel drops a touch in progress
func (c *Controller) TouchCancel(event *mobile.TouchEvent) {
	c.swipe.TouchCancel(event)
}

func (c *Controller) onGesture(g GestureType) {
	switch g {
	case GestureSwipeRight:
		c.GoToPrevPage()
	case GestureSwipeLeft:
		c.GoToNextPage()
	}
}

func (c *Controller) onFullscreenChange(fullscreen bool) {
	if c.closed {
		return
	}
	c.update(func(st *model.ReaderState) { st.IsFullscreen = fullscreen })
}

func (c *Controller) setPage(p int) {
	if c.closed {
		return
	}
	changed := c.update(func(st *model.ReaderState) { st.PageNumber = st.ClampPage(p) })
	if changed && c.State().ReadingMode == model.ReadingModeSingle {
		c.surface.ScrollTo(0)
	}
}

func (c *Controller) setScale(scale float64) {
	if c.closed || math.IsNaN(scale) {
		return
	}
	scale = model.ClampScale(scale)
	c.update(func(st *model.ReaderState) { st.Scale = scale })
}

// update applies mutate, persists what changed and notifies the view
func (c *Controller) update(mutate func(*model.ReaderState)) bool {
	c.mu.Lock()
	prev := c.state
	mutate(&c.state)
	next := c.state
	callback := c.onUpdate
	c.mu.Unlock()

	if prev == next {
		return false
	}
	c.persist(prev, next)
	if callback != nil {
		callback(next)
	}
	return true
}

func (c *Controller) persist(prev, next model.ReaderState) {
	if c.settings == nil {
		return
	}
	if next.NumPages > 0 && (next.PageNumber != prev.PageNumber || prev.NumPages == 0) {
		c.settings.SetPage(next.PageNumber)
	}
	if next.ReadingMode != prev.ReadingMode {
		c.settings.SetReadingMode(next.ReadingMode)
	}
	if next.Scale != prev.Scale {
		c.settings.SetScale(next.Scale)
	}
}
