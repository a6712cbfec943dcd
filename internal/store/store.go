package store

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/model"
)

// Listener receives the state before and after a mutation
type Listener func(prev, next model.PlaybackState)

type change struct {
	prev, next model.PlaybackState
}

// Store owns the PlaybackState
type Store struct {
	mu          sync.Mutex
	state       model.PlaybackState
	settings    *config.Settings
	logger      *zap.Logger
	listeners   []subscription
	nextID      int
	pending     []change
	dispatching bool
}

type subscription struct {
	id int
	fn Listener
}

// New creates a store. Volume and playback rate are restored from settings
// when it is not nil; transport intent always starts fresh.
func New(settings *config.Settings, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	state := model.NewPlaybackState()
	if settings != nil {
		state.Volume = settings.GetVolume(state.Volume)
		state.PlaybackRate = settings.GetPlaybackRate(state.PlaybackRate)
	}
	return &Store{state: state, settings: settings, logger: logger}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() model.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every subsequent change. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// SetPlaying records the intended transport state
func (s *Store) SetPlaying(playing bool) {
	s.update(func(st *model.PlaybackState) {
		st.IsPlaying = playing
	})
}

// SetCurrentTime sets the position, clamped to [0, Duration] when the duration is known
func (s *Store) SetCurrentTime(t float64) {
	s.update(func(st *model.PlaybackState) {
		st.CurrentTime = model.ClampPosition(t, st.Duration)
	})
}

// SetDuration sets the media duration; non-finite or negative values mean unknown
func (s *Store) SetDuration(d float64) {
	s.update(func(st *model.PlaybackState) {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			d = 0
		}
		st.Duration = d
		st.CurrentTime = model.ClampPosition(st.CurrentTime, d)
	})
}

// SetVolume sets and persists the volume, clamped to [0,1]
func (s *Store) SetVolume(v float64) {
	v = model.ClampVolume(v)
	if s.update(func(st *model.PlaybackState) { st.Volume = v }) && s.settings != nil {
		s.settings.SetVolume(v)
	}
}

// SetPlaybackRate sets and persists the rate, snapped to the nearest supported value
func (s *Store) SetPlaybackRate(r float64) {
	r = model.ClampPlaybackRate(r)
	if s.update(func(st *model.PlaybackState) { st.PlaybackRate = r }) && s.settings != nil {
		s.settings.SetPlaybackRate(r)
	}
}

// SelectChapter makes ch current without changing the playing intent.
// This is the browse path.
func (s *Store) SelectChapter(ch model.Chapter) {
	s.update(func(st *model.PlaybackState) {
		selectChapter(st, ch)
	})
}

// PlayChapter makes ch current and raises the playing intent.
// Only call it from a direct user action.
func (s *Store) PlayChapter(ch model.Chapter) {
	s.update(func(st *model.PlaybackState) {
		selectChapter(st, ch)
		st.IsPlaying = true
	})
}

// Reset stops playback intent and rewinds, keeping the chapter and preferences
func (s *Store) Reset() {
	s.update(func(st *model.PlaybackState) {
		st.IsPlaying = false
		st.CurrentTime = 0
		st.Duration = 0
	})
}

func selectChapter(st *model.PlaybackState, ch model.Chapter) {
	chapter := ch
	st.CurrentChapter = model.CurrentChapter{Chapter: &chapter, AudioURL: ch.AudioURL}
	st.CurrentTime = 0
	st.Duration = 0
}

// update applies mutate under the lock and reports whether the state changed
func (s *Store) update(mutate func(*model.PlaybackState)) bool {
	s.mu.Lock()
	prev := s.state
	mutate(&s.state)
	next := s.state
	if prev == next {
		s.mu.Unlock()
		return false
	}
	s.pending = append(s.pending, change{prev: prev, next: next})
	if s.dispatching {
		s.mu.Unlock()
		return true
	}
	s.dispatching = true
	s.mu.Unlock()

	s.drain()
	return true
}

func (s *Store) drain() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.dispatching = false
			s.mu.Unlock()
			return
		}
		c := s.pending[0]
		s.pending = s.pending[1:]
		listeners := make([]subscription, len(s.listeners))
		copy(listeners, s.listeners)
		s.mu.Unlock()

		for _, sub := range listeners {
			s.call(sub.fn, c)
		}
	}
}

func (s *Store) call(fn Listener, c change) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("playback state listener panicked", zap.Any("panic", r))
		}
	}()
	fn(c.prev, c.next)
}
