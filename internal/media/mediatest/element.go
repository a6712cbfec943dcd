package mediatest

import (
	"math"
	"sync"

	"github.com/ytget/audiobook-reader/internal/media"
)

var _ media.Element = (*Element)(nil)

// Element is an in-memory media.Element for tests. Play completions are held
// until ResolvePlay is called unless AutoResolve is set.
type Element struct {
	mu          sync.Mutex
	src         string
	paused      bool
	time        float64
	duration    float64
	volume      float64
	rate        float64
	err         *media.Error
	subs        map[int]func(media.Event)
	nextID      int
	pending     []func(error)
	autoResolve bool

	volumes    []float64
	playCalls  int
	loadCalls  int
	pauseCalls int
}

// New returns a fresh, paused element with unknown duration
func New() *Element {
	return &Element{
		paused:   true,
		duration: math.NaN(),
		volume:   1,
		rate:     1,
		subs:     make(map[int]func(media.Event)),
	}
}

// SetAutoResolve makes Play resolve immediately with nil and emit playing
func (e *Element) SetAutoResolve(auto bool) {
	e.mu.Lock()
	e.autoResolve = auto
	e.mu.Unlock()
}

func (e *Element) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

func (e *Element) SetSource(url string) {
	e.mu.Lock()
	e.src = url
	e.time = 0
	e.duration = math.NaN()
	e.err = nil
	e.paused = true
	e.mu.Unlock()
}

func (e *Element) Load() {
	e.mu.Lock()
	e.loadCalls++
	e.mu.Unlock()
}

func (e *Element) Play(done func(error)) {
	e.mu.Lock()
	e.playCalls++
	if !e.autoResolve {
		e.pending = append(e.pending, done)
		e.mu.Unlock()
		return
	}
	e.paused = false
	e.mu.Unlock()
	done(nil)
	e.Emit(media.EventPlaying)
}

// ResolvePlay completes the oldest pending Play with err. A nil err also
// marks the element as playing. It returns false when nothing is pending.
func (e *Element) ResolvePlay(err error) bool {
	e.mu.Lock()
	if len(e.pending) == 0 {
		e.mu.Unlock()
		return false
	}
	done := e.pending[0]
	e.pending = e.pending[1:]
	if err == nil {
		e.paused = false
	}
	e.mu.Unlock()
	done(err)
	return true
}

// PendingPlays returns the number of unresolved Play calls
func (e *Element) PendingPlays() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *Element) Pause() {
	e.mu.Lock()
	e.pauseCalls++
	e.paused = true
	e.mu.Unlock()
}

func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *Element) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.time
}

func (e *Element) SetCurrentTime(seconds float64) {
	e.mu.Lock()
	e.time = seconds
	e.mu.Unlock()
}

func (e *Element) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Element) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

func (e *Element) SetVolume(v float64) {
	e.mu.Lock()
	e.volume = v
	e.volumes = append(e.volumes, v)
	e.mu.Unlock()
}

// Rate returns the last playback rate applied
func (e *Element) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

func (e *Element) SetPlaybackRate(r float64) {
	e.mu.Lock()
	e.rate = r
	e.mu.Unlock()
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

// Subscribers returns the number of registered event listeners
func (e *Element) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

// Emit raises an event for the current source
func (e *Element) Emit(t media.EventType) {
	e.EmitFor(t, e.Source())
}

// EmitFor raises an event stamped with an explicit source
func (e *Element) EmitFor(t media.EventType, source string) {
	e.mu.Lock()
	subs := make([]func(media.Event), 0, len(e.subs))
	for id := 1; id <= e.nextID; id++ {
		if fn, ok := e.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	e.mu.Unlock()
	for _, fn := range subs {
		fn(media.Event{Type: t, Source: source})
	}
}

// LoadMetadata sets the duration and emits loadedmetadata and canplay
func (e *Element) LoadMetadata(duration float64) {
	e.mu.Lock()
	e.duration = duration
	e.mu.Unlock()
	e.Emit(media.EventLoadedMetadata)
	e.Emit(media.EventCanPlay)
}

// Advance moves the position and emits timeupdate
func (e *Element) Advance(seconds float64) {
	e.mu.Lock()
	e.time += seconds
	e.mu.Unlock()
	e.Emit(media.EventTimeUpdate)
}

// Fail sets the error state, pauses, and emits error
func (e *Element) Fail(code media.ErrorCode) {
	e.mu.Lock()
	e.err = &media.Error{Code: code}
	e.paused = true
	e.mu.Unlock()
	e.Emit(media.EventError)
}

// Finish moves to the end, pauses and emits ended
func (e *Element) Finish() {
	e.mu.Lock()
	if !math.IsNaN(e.duration) {
		e.time = e.duration
	}
	e.paused = true
	e.mu.Unlock()
	e.Emit(media.EventEnded)
}

// ForcePlaying puts the element in a playing, mid-stream state as if it
// survived from an earlier session
func (e *Element) ForcePlaying(source string, position float64) {
	e.mu.Lock()
	e.src = source
	e.paused = false
	e.time = position
	e.mu.Unlock()
}

// Volumes returns every gain applied with SetVolume, in order
func (e *Element) Volumes() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, len(e.volumes))
	copy(out, e.volumes)
	return out
}

// PlayCalls returns the number of Play calls
func (e *Element) PlayCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playCalls
}

// LoadCalls returns the number of Load calls
func (e *Element) LoadCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadCalls
}

// PauseCalls returns the number of Pause calls
func (e *Element) PauseCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pauseCalls
}
