package ebitenaudio

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/media"
)

// Element defaults
const (
	DefaultSampleRate   = 44100
	DefaultTickInterval = 250 * time.Millisecond
	DefaultFetchTimeout = 5 * time.Minute
)

var (
	contextOnce   sync.Once
	sharedContext *audio.Context
)

// audioContext returns the process-wide audio context; ebiten allows only one
func audioContext(sampleRate int) *audio.Context {
	contextOnce.Do(func() {
		if c := audio.CurrentContext(); c != nil {
			sharedContext = c
			return
		}
		sharedContext = audio.NewContext(sampleRate)
	})
	return sharedContext
}

// Options configures an Element
type Options struct {
	SampleRate   int
	Client       *http.Client
	TickInterval time.Duration
	Logger       *zap.Logger
}

var _ media.Element = (*Element)(nil)

// Element plays one source at a time through ebiten audio
type Element struct {
	ctx        *audio.Context
	sampleRate int
	client     *http.Client
	tick       time.Duration
	logger     *zap.Logger

	mu          sync.Mutex
	src         string
	gen         uint64
	cancel      context.CancelFunc
	loading     bool
	stream      pcmStream
	player      *audio.Player
	paused      bool
	pendingSeek float64
	volume      float64
	rate        float64
	err         *media.Error
	waiters     []func(error)
	stopTick    chan struct{}
	closed      bool

	subs   map[int]func(media.Event)
	nextID int
}

// New creates an element. The audio context is created on first use.
func New(opts Options) *Element {
	sampleRate := opts.SampleRate
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	ctx := audioContext(sampleRate)
	return &Element{
		ctx:        ctx,
		sampleRate: ctx.SampleRate(),
		client:     client,
		tick:       tick,
		logger:     logging.OrNop(opts.Logger),
		paused:     true,
		volume:     1,
		rate:       1,
		subs:       make(map[int]func(media.Event)),
	}
}

func (e *Element) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

func (e *Element) SetSource(url string) {
	e.mu.Lock()
	waiters := e.resetLocked()
	e.src = url
	e.mu.Unlock()

	abort(waiters)
}

// resetLocked drops everything tied to the current source and returns the
// play waiters that must still be completed
func (e *Element) resetLocked() []func(error) {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.stopTickLocked()
	if e.player != nil {
		if err := e.player.Close(); err != nil {
			e.logger.Debug("closing audio player", zap.Error(err))
		}
		e.player = nil
	}
	e.stream = nil
	e.loading = false
	e.paused = true
	e.pendingSeek = 0
	e.err = nil
	waiters := e.waiters
	e.waiters = nil
	return waiters
}

func abort(waiters []func(error)) {
	for _, done := range waiters {
		done(&media.Error{Code: media.ErrorCodeAborted, Message: "source replaced"})
	}
}

func (e *Element) Load() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src == "" || e.loading || e.stream != nil || e.closed {
		return
	}
	e.startLoadLocked()
}

func (e *Element) startLoadLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.loading = true
	e.err = nil
	go e.load(ctx, e.gen, e.src)
}

func (e *Element) load(ctx context.Context, gen uint64, src string) {
	e.emit(media.EventLoadStart, src)
	started := time.Now()

	f, err := fetch(ctx, e.client, src)
	if err != nil {
		e.failLoad(gen, src, err)
		return
	}
	format := FormatOf(src, f.contentType)
	stream, err := decode(format, e.sampleRate, f.data)
	if err != nil {
		e.failLoad(gen, src, err)
		return
	}

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.loading = false
	e.cancel = nil
	e.stream = stream
	if err := e.newPlayerLocked(); err != nil {
		e.stream = nil
		e.mu.Unlock()
		e.failLoad(gen, src, &media.Error{Code: media.ErrorCodeDecode, Message: err.Error()})
		return
	}
	if e.pendingSeek > 0 {
		e.seekLocked(e.pendingSeek)
		e.pendingSeek = 0
	}
	waiters := e.waiters
	e.waiters = nil
	start := len(waiters) > 0
	if start {
		e.playLocked()
	}
	duration := e.durationLocked()
	e.mu.Unlock()

	e.logger.Debug("audio source ready",
		zap.String(logging.FieldSource, src),
		zap.String("format", string(format)),
		zap.Int("bytes", len(f.data)),
		zap.Float64("duration", duration),
		zap.Duration("elapsed", time.Since(started)),
	)

	e.emit(media.EventDurationChange, src)
	e.emit(media.EventLoadedMetadata, src)
	e.emit(media.EventCanPlay, src)
	e.emit(media.EventCanPlayThrough, src)
	for _, done := range waiters {
		done(nil)
	}
	if start {
		e.emit(media.EventPlaying, src)
	}
}

func (e *Element) failLoad(gen uint64, src string, err error) {
	var me *media.Error
	if !errors.As(err, &me) {
		me = &media.Error{Code: media.ErrorCodeNetwork, Message: err.Error()}
	}

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.loading = false
	e.cancel = nil
	e.err = me
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()

	e.logger.Debug("audio source failed", zap.String(logging.FieldSource, src), zap.Error(me))
	for _, done := range waiters {
		done(me)
	}
	e.emit(media.EventError, src)
}

func (e *Element) Play(done func(error)) {
	e.mu.Lock()
	switch {
	case e.closed || e.src == "":
		e.mu.Unlock()
		done(&media.Error{Code: media.ErrorCodeSrcNotSupported, Message: "no source"})
		return
	case e.err != nil && e.stream == nil:
		err := e.err
		e.mu.Unlock()
		done(err)
		return
	case e.player != nil:
		wasPaused := e.paused
		e.playLocked()
		src := e.src
		e.mu.Unlock()
		done(nil)
		if wasPaused {
			e.emit(media.EventPlaying, src)
		}
		return
	}
	e.waiters = append(e.waiters, done)
	if !e.loading {
		e.startLoadLocked()
	}
	e.mu.Unlock()
}

func (e *Element) playLocked() {
	e.player.Play()
	e.paused = false
	e.startTickLocked()
}

func (e *Element) Pause() {
	e.mu.Lock()
	wasPlaying := e.player != nil && !e.paused
	e.paused = true
	if e.player != nil {
		e.player.Pause()
	}
	e.stopTickLocked()
	waiters := e.waiters
	e.waiters = nil
	src := e.src
	e.mu.Unlock()

	// A pause while loading wins over the queued play.
	for _, done := range waiters {
		done(nil)
	}
	if wasPlaying {
		e.emit(media.EventPause, src)
	}
}

func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *Element) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentTimeLocked()
}

func (e *Element) currentTimeLocked() float64 {
	if e.player == nil {
		return e.pendingSeek
	}
	return e.player.Position().Seconds() * e.rate
}

func (e *Element) SetCurrentTime(seconds float64) {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		e.pendingSeek = seconds
		return
	}
	e.seekLocked(seconds)
}

func (e *Element) seekLocked(seconds float64) {
	if d := e.durationLocked(); !math.IsNaN(d) && seconds > d {
		seconds = d
	}
	offset := time.Duration(seconds / e.rate * float64(time.Second))
	if err := e.player.SetPosition(offset); err != nil {
		e.logger.Warn("audio seek failed", zap.String(logging.FieldSource, e.src), zap.Error(err))
	}
}

func (e *Element) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.durationLocked()
}

func (e *Element) durationLocked() float64 {
	if e.stream == nil {
		return math.NaN()
	}
	return float64(e.stream.Length()) / float64(bytesPerFrame*e.sampleRate)
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
	if e.player != nil {
		e.player.SetVolume(v)
	}
}

// SetPlaybackRate changes speed by resampling, so pitch follows the rate
func (e *Element) SetPlaybackRate(r float64) {
	if r <= 0 || math.IsNaN(r) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if r == e.rate {
		return
	}
	pos := e.currentTimeLocked()
	e.rate = r
	if e.player == nil {
		return
	}

	wasPlaying := !e.paused
	if err := e.player.Close(); err != nil {
		e.logger.Debug("closing audio player", zap.Error(err))
	}
	e.player = nil
	if err := e.newPlayerLocked(); err != nil {
		e.logger.Error("recreating audio player", zap.Float64("rate", r), zap.Error(err))
		e.paused = true
		e.stopTickLocked()
		return
	}
	e.seekLocked(pos)
	if wasPlaying {
		e.player.Play()
	}
}

func (e *Element) newPlayerLocked() error {
	if _, err := e.stream.Seek(0, io.SeekStart); err != nil {
		return err
	}
	var src io.ReadSeeker = e.stream
	if e.rate != 1 {
		src = audio.Resample(e.stream, e.stream.Length(), int(float64(e.sampleRate)*e.rate), e.sampleRate)
	}
	player, err := e.ctx.NewPlayer(src)
	if err != nil {
		return err
	}
	player.SetVolume(e.volume)
	e.player = player
	return nil
}

func (e *Element) Error() *media.Error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Element) Subscribe(fn func(media.Event)) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Close stops playback, cancels any load and releases the player
func (e *Element) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	waiters := e.resetLocked()
	e.subs = make(map[int]func(media.Event))
	e.mu.Unlock()

	abort(waiters)
	return nil
}

func (e *Element) startTickLocked() {
	if e.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	e.stopTick = stop
	go e.tickLoop(stop, e.gen, e.src)
}

func (e *Element) stopTickLocked() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

func (e *Element) tickLoop(stop chan struct{}, gen uint64, src string) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			active, ended := e.poll(gen, stop)
			if !active {
				return
			}
			e.emit(media.EventTimeUpdate, src)
			if ended {
				e.emit(media.EventEnded, src)
				return
			}
		}
	}
}

// poll reports whether the ticker still belongs to the current source and
// whether the stream ran out
func (e *Element) poll(gen uint64, stop chan struct{}) (active, ended bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || e.stopTick != stop || e.player == nil {
		return false, false
	}
	if e.paused || e.player.IsPlaying() {
		return true, false
	}
	e.paused = true
	e.stopTick = nil
	return true, true
}

func (e *Element) emit(t media.EventType, src string) {
	e.mu.Lock()
	subs := make([]func(media.Event), 0, len(e.subs))
	for id := 1; id <= e.nextID; id++ {
		if fn, ok := e.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn(media.Event{Type: t, Source: src})
	}
}
