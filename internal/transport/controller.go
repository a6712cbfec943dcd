package transport

import (
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/eventloop"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/media"
	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/notify"
	"github.com/ytget/audiobook-reader/internal/store"
)

// Transport defaults
const (
	DefaultBufferingDelay = 3 * time.Second
	MinBufferingDelay     = 500 * time.Millisecond
	DefaultSkip           = 15.0
	DefaultKeyboardSkip   = 5.0
	VolumeStep            = 0.1
)

// Options configures a Controller
type Options struct {
	Clock          eventloop.Clock
	Dispatch       eventloop.Dispatcher
	Notifier       notify.Notifier
	Logger         *zap.Logger
	BufferingDelay time.Duration
	KeyboardSkip   float64
}

// Controller mediates between the playback store and one media element
type Controller struct {
	el             media.Element
	store          *store.Store
	clock          eventloop.Clock
	dispatch       eventloop.Dispatcher
	notifier       notify.Notifier
	logger         *zap.Logger
	bufferingDelay time.Duration
	keyboardSkip   float64

	mounted   bool
	closed    bool
	gen       uint64
	source    string
	manual    bool
	advancing bool
	reported  bool
	sticky    bool

	bufferTimer  eventloop.Timer
	mutedVolume  float64
	unsubElement func()
	unsubStore   func()
	onEnded      func() bool

	statusMu   sync.Mutex
	status     Status
	statusSubs []statusSub
	nextSubID  int
}

type statusSub struct {
	id int
	fn func(Status)
}

// New creates a controller for el. Call Mount before use.
func New(el media.Element, st *store.Store, opts Options) *Controller {
	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = eventloop.Immediate
	}
	clock := opts.Clock
	if clock == nil {
		clock = eventloop.NewClock(dispatch)
	}
	delay := opts.BufferingDelay
	if delay == 0 {
		delay = DefaultBufferingDelay
	}
	if delay < MinBufferingDelay {
		delay = MinBufferingDelay
	}
	skip := opts.KeyboardSkip
	if skip <= 0 {
		skip = DefaultKeyboardSkip
	}
	return &Controller{
		el:             el,
		store:          st,
		clock:          clock,
		dispatch:       dispatch,
		notifier:       opts.Notifier,
		logger:         logging.OrNop(opts.Logger),
		bufferingDelay: delay,
		keyboardSkip:   skip,
		status:         Status{State: model.MediaStateIdle},
	}
}

// SetEndedHandler installs the hook consulted on natural end of media. It
// returns true when it started another chapter.
func (c *Controller) SetEndedHandler(fn func() bool) {
	c.onEnded = fn
}

// KeyboardSkip returns the seconds skipped by the J/L and arrow keys
func (c *Controller) KeyboardSkip() float64 {
	return c.keyboardSkip
}

// Store returns the playback store
func (c *Controller) Store() *store.Store {
	return c.store
}

// Mount attaches listeners, applies volume and rate, resets an element left
// over from an earlier session and assigns the current chapter source
// without loading it. Mount is idempotent.
func (c *Controller) Mount() {
	if c.mounted || c.closed {
		return
	}
	c.mounted = true

	c.unsubElement = c.el.Subscribe(func(ev media.Event) {
		c.dispatch(func() { c.handleEvent(ev) })
	})

	snap := c.store.Snapshot()
	c.el.SetVolume(snap.Volume)
	c.el.SetPlaybackRate(snap.PlaybackRate)

	if !c.el.Paused() || c.el.CurrentTime() > 0 {
		c.logger.Info("resetting media element from previous session",
			zap.String(logging.FieldSource, c.el.Source()),
			zap.Float64("position", c.el.CurrentTime()),
		)
		c.el.Pause()
		c.el.SetCurrentTime(0)
	}
	if snap.IsPlaying || snap.CurrentTime > 0 || snap.Duration > 0 {
		c.store.Reset()
	}
	if snap.CurrentChapter.IsSet() {
		c.assignSource(snap.CurrentChapter.AudioURL, false)
	}

	c.unsubStore = c.store.Subscribe(c.onStoreChange)
}

// Close removes all listeners and cancels timers. It is idempotent; every
// operation after Close is a no-op.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.stopBufferTimer()
	if c.unsubElement != nil {
		c.unsubElement()
		c.unsubElement = nil
	}
	if c.unsubStore != nil {
		c.unsubStore()
		c.unsubStore = nil
	}
	c.statusMu.Lock()
	c.statusSubs = nil
	c.statusMu.Unlock()
}

// TogglePlayPause flips the playing intent
func (c *Controller) TogglePlayPause() {
	if !c.active() {
		return
	}
	c.store.SetPlaying(!c.store.Snapshot().IsPlaying)
}

// Play raises the playing intent
func (c *Controller) Play() {
	if !c.active() {
		return
	}
	c.store.SetPlaying(true)
}

// Pause clears the playing intent
func (c *Controller) Pause() {
	if !c.active() {
		return
	}
	c.store.SetPlaying(false)
}

// Seek moves to t seconds, clamped to [0, duration] (or >= 0 while the
// duration is unknown). The store is updated before the element.
func (c *Controller) Seek(t float64) {
	if !c.active() {
		return
	}
	if math.IsNaN(t) {
		return
	}
	t = model.ClampPosition(t, c.store.Snapshot().Duration)
	c.store.SetCurrentTime(t)
	c.el.SetCurrentTime(t)
}

// SkipForward seeks delta seconds ahead
func (c *Controller) SkipForward(delta float64) {
	if !c.active() {
		return
	}
	c.Seek(c.store.Snapshot().CurrentTime + delta)
}

// SkipBackward seeks delta seconds back
func (c *Controller) SkipBackward(delta float64) {
	if !c.active() {
		return
	}
	c.Seek(c.store.Snapshot().CurrentTime - delta)
}

// SetVolume clamps v to [0,1] and applies it
func (c *Controller) SetVolume(v float64) {
	if !c.active() {
		return
	}
	c.store.SetVolume(v)
}

// SetPlaybackRate snaps r to a supported rate and applies it
func (c *Controller) SetPlaybackRate(r float64) {
	if !c.active() {
		return
	}
	c.store.SetPlaybackRate(r)
}

// ToggleMute silences the output, or restores the volume from before muting
func (c *Controller) ToggleMute() {
	if !c.active() {
		return
	}
	v := c.store.Snapshot().Volume
	if v > 0 {
		c.mutedVolume = v
		c.store.SetVolume(0)
		return
	}
	restore := c.mutedVolume
	if restore <= 0 {
		restore = model.DefaultVolume
	}
	c.store.SetVolume(restore)
}

// Status returns a copy of the display state
func (c *Controller) Status() Status {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return c.status
}

// OnStatus registers fn for status changes and returns an unsubscribe function
func (c *Controller) OnStatus(fn func(Status)) func() {
	c.statusMu.Lock()
	c.nextSubID++
	id := c.nextSubID
	c.statusSubs = append(c.statusSubs, statusSub{id: id, fn: fn})
	c.statusMu.Unlock()

	return func() {
		c.statusMu.Lock()
		defer c.statusMu.Unlock()
		for i, sub := range c.statusSubs {
			if sub.id == id {
				c.statusSubs = append(c.statusSubs[:i:i], c.statusSubs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) active() bool {
	return c.mounted && !c.closed
}

func (c *Controller) onStoreChange(prev, next model.PlaybackState) {
	if c.closed {
		return
	}
	if next.Volume != prev.Volume {
		c.el.SetVolume(next.Volume)
	}
	if next.PlaybackRate != prev.PlaybackRate {
		c.el.SetPlaybackRate(next.PlaybackRate)
	}

	sourceChanged := next.CurrentChapter.AudioURL != prev.CurrentChapter.AudioURL ||
		next.CurrentChapter.ID() != prev.CurrentChapter.ID()
	if sourceChanged {
		// The browse path preloads metadata; the play path loads through Play.
		c.assignSource(next.CurrentChapter.AudioURL, !next.IsPlaying)
		if next.IsPlaying {
			c.startPlay(!c.advancing)
		}
		return
	}

	switch {
	case next.IsPlaying && !prev.IsPlaying:
		c.startPlay(!c.advancing)
	case !next.IsPlaying && prev.IsPlaying:
		c.el.Pause()
	}
}

// assignSource supersedes everything in flight for the previous source
func (c *Controller) assignSource(url string, load bool) {
	c.gen++
	c.source = url
	c.manual = false
	c.reported = false
	c.sticky = false
	c.stopBufferTimer()
	c.el.SetSource(url)

	c.logger.Debug("media source assigned",
		zap.String(logging.FieldSource, url),
		zap.Uint64(logging.FieldGeneration, c.gen),
	)
	c.setStatus(func(s *Status) {
		*s = Status{State: model.MediaStateIdle, Generation: c.gen, Source: url}
	})

	if load && url != "" {
		c.el.Load()
	}
}

func (c *Controller) startPlay(manual bool) {
	if c.source == "" {
		c.store.SetPlaying(false)
		return
	}
	if manual {
		c.manual = true
	}

	if st := c.Status(); st.State == model.MediaStateError {
		if c.sticky {
			c.logger.Info("play ignored for failed source",
				zap.String(logging.FieldSource, c.source),
				zap.Bool("manual", manual),
			)
			if manual && st.Advisory != nil {
				c.surface(Classify(&media.Error{Code: media.ErrorCodeSrcNotSupported}, true), st.Advisory)
			}
			c.store.SetPlaying(false)
			return
		}
		// Recoverable failure: retry with a fresh assignment of the same source.
		c.assignSource(c.source, false)
		c.manual = manual
	}

	if c.Status().State == model.MediaStateIdle {
		c.setStatus(func(s *Status) {
			s.State = model.MediaStateLoading
			s.Loading = true
		})
	}

	gen := c.gen
	c.el.Play(func(err error) {
		c.dispatch(func() { c.onPlayResult(gen, err) })
	})
}

// surface re-notifies a sticky failure after a manual retry. Decode errors
// repeat their own message; anything else reports the general failure.
func (c *Controller) surface(general Advisory, current *Advisory) {
	adv := general
	if current.Category == CategoryDecodeCorrupt {
		adv = *current
	}
	adv.Visible = true
	c.setStatus(func(s *Status) { s.Advisory = &adv })
	c.notify(adv)
}

func (c *Controller) onPlayResult(gen uint64, err error) {
	if c.closed {
		return
	}
	if gen != c.gen {
		c.logger.Debug("discarding stale play completion",
			zap.Uint64(logging.FieldGeneration, gen),
			zap.Uint64("current_generation", c.gen),
		)
		return
	}
	if err == nil {
		if !c.store.Snapshot().IsPlaying {
			// Intent was withdrawn while play was pending.
			c.el.Pause()
		}
		return
	}

	if errors.Is(err, media.ErrPlayNotAllowed) {
		adv := Classify(err, c.manual)
		c.logger.Debug("play rejected by autoplay policy", zap.String(logging.FieldSource, c.source))
		c.setStatus(func(s *Status) {
			s.Loading = false
			if s.State == model.MediaStateLoading {
				s.State = model.MediaStateIdle
			}
			s.Advisory = &adv
		})
		c.store.SetPlaying(false)
		return
	}

	var me *media.Error
	if errors.As(err, &me) {
		c.fail(me)
		return
	}
	c.failWith(Classify(err, c.manual))
}

func (c *Controller) fail(me *media.Error) {
	c.failWith(Classify(me, c.manual))
}

func (c *Controller) failWith(adv Advisory) {
	c.stopBufferTimer()

	fields := []zap.Field{
		zap.String(logging.FieldSource, c.source),
		zap.String(logging.FieldCategory, adv.Category.String()),
		zap.String("detail", adv.Detail),
	}
	switch adv.Category {
	case CategorySourceUnsupported:
		c.logger.Error("media source rejected; check that the host serves it with permissive cross-origin headers", fields...)
	case CategoryLoadAborted:
		c.logger.Info("media load aborted", fields...)
	default:
		c.logger.Warn("media playback failed", fields...)
	}

	c.setStatus(func(s *Status) {
		s.Loading = false
		s.Buffering = false
		s.BufferingVisible = false
		s.Advisory = &adv
		if adv.Category == CategoryLoadAborted {
			s.State = model.MediaStateIdle
		} else {
			s.State = model.MediaStateError
		}
	})
	c.sticky = adv.Category.IsSticky()

	if adv.Visible && !c.reported {
		c.reported = true
		c.notify(adv)
	}
	c.store.SetPlaying(false)
}

func (c *Controller) notify(adv Advisory) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(adv.Kind, adv.TitleKey, adv.MessageKey)
}

func (c *Controller) handleEvent(ev media.Event) {
	if !c.active() {
		return
	}
	if ev.Source != c.source {
		c.logger.Debug("discarding event for superseded source",
			zap.String("event", ev.Type.String()),
			zap.String(logging.FieldSource, ev.Source),
		)
		return
	}

	switch ev.Type {
	case media.EventLoadStart:
		c.setStatus(func(s *Status) {
			if s.State == model.MediaStateError {
				return
			}
			s.Loading = true
			if s.State == model.MediaStateIdle {
				s.State = model.MediaStateLoading
			}
		})
	case media.EventLoadedMetadata:
		c.applyDuration()
		c.restorePosition()
	case media.EventDurationChange:
		c.applyDuration()
	case media.EventCanPlay:
		c.applyDuration()
		c.stopBufferTimer()
		c.setStatus(func(s *Status) {
			if s.State == model.MediaStateError {
				return
			}
			s.Loading = false
			s.Buffering = false
			s.BufferingVisible = false
			if s.State == model.MediaStateIdle || s.State == model.MediaStateLoading {
				s.State = model.MediaStateReady
			}
		})
	case media.EventCanPlayThrough:
		c.clearBuffering()
	case media.EventTimeUpdate:
		c.store.SetCurrentTime(c.el.CurrentTime())
	case media.EventWaiting, media.EventStalled:
		c.startBuffering()
	case media.EventPlaying:
		c.stopBufferTimer()
		c.setStatus(func(s *Status) {
			if s.State == model.MediaStateError {
				return
			}
			s.State = model.MediaStatePlaying
			s.Loading = false
			s.Buffering = false
			s.BufferingVisible = false
			if s.Advisory != nil && s.Advisory.Category == CategoryTransientNetwork {
				s.Advisory = nil
			}
		})
	case media.EventPause:
		c.setStatus(func(s *Status) {
			if s.State == model.MediaStatePlaying || s.State == model.MediaStateReady {
				s.State = model.MediaStatePaused
			}
		})
	case media.EventEnded:
		c.handleEnded()
	case media.EventError:
		me := c.el.Error()
		if me == nil {
			me = &media.Error{Code: media.ErrorCodeNone}
		}
		c.fail(me)
	}
}

func (c *Controller) applyDuration() {
	d := c.el.Duration()
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return
	}
	c.store.SetDuration(d)
}

// restorePosition applies a seek made before metadata was available
func (c *Controller) restorePosition() {
	snap := c.store.Snapshot()
	if snap.CurrentTime <= 0 || !model.IsKnownDuration(snap.Duration) || snap.CurrentTime >= snap.Duration {
		return
	}
	if c.el.CurrentTime() != snap.CurrentTime {
		c.el.SetCurrentTime(snap.CurrentTime)
	}
}

func (c *Controller) handleEnded() {
	c.clearBuffering()
	if c.onEnded != nil {
		c.advancing = true
		advanced := c.onEnded()
		c.advancing = false
		if advanced {
			return
		}
	}
	c.store.SetPlaying(false)
	c.store.SetCurrentTime(0)
	c.el.SetCurrentTime(0)
	c.setStatus(func(s *Status) {
		if s.State != model.MediaStateError {
			s.State = model.MediaStatePaused
		}
	})
}

func (c *Controller) startBuffering() {
	if !c.Status().State.CanBuffer() {
		return
	}
	c.setStatus(func(s *Status) { s.Buffering = true })
	if c.bufferTimer != nil {
		return
	}
	gen := c.gen
	c.bufferTimer = c.clock.AfterFunc(c.bufferingDelay, func() { c.onBufferingTimeout(gen) })
}

func (c *Controller) onBufferingTimeout(gen uint64) {
	if c.closed || gen != c.gen {
		return
	}
	c.bufferTimer = nil
	if !c.Status().Buffering {
		return
	}
	c.logger.Warn("playback stalled", zap.String(logging.FieldSource, c.source))
	adv := bufferingAdvisory
	c.setStatus(func(s *Status) {
		s.BufferingVisible = true
		s.Advisory = &adv
	})
	c.notify(adv)
}

func (c *Controller) clearBuffering() {
	c.stopBufferTimer()
	c.setStatus(func(s *Status) {
		s.Buffering = false
		s.BufferingVisible = false
	})
}

func (c *Controller) stopBufferTimer() {
	if c.bufferTimer != nil {
		c.bufferTimer.Stop()
		c.bufferTimer = nil
	}
}

func (c *Controller) setStatus(mutate func(*Status)) {
	c.statusMu.Lock()
	prev := c.status
	mutate(&c.status)
	next := c.status
	subs := make([]statusSub, len(c.statusSubs))
	copy(subs, c.statusSubs)
	c.statusMu.Unlock()

	if prev == next {
		return
	}
	for _, sub := range subs {
		sub.fn(next)
	}
}
