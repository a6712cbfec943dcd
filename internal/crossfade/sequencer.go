package crossfade

import (
	"time"

	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/eventloop"
	"github.com/ytget/audiobook-reader/internal/logging"
	"github.com/ytget/audiobook-reader/internal/media"
	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/store"
	"github.com/ytget/audiobook-reader/internal/transport"
)

// Ramp defaults
const (
	DefaultSteps    = 10
	DefaultDuration = 80 * time.Millisecond
)

// StatusSource reports transport status changes
type StatusSource interface {
	Status() transport.Status
	OnStatus(fn func(transport.Status)) func()
}

// Options configures a Sequencer. Clock is required and must deliver timer
// callbacks on the goroutine that owns the store.
type Options struct {
	Clock    eventloop.Clock
	Steps    int
	Duration time.Duration
	Logger   *zap.Logger
}

// Sequencer owns the gain ramps of one element
type Sequencer struct {
	el       media.Element
	store    *store.Store
	clock    eventloop.Clock
	steps    int
	interval time.Duration
	logger   *zap.Logger

	closed bool

	fading  bool
	outStep int
	outFrom float64
	outDone func()
	outTmr  eventloop.Timer

	// fade-in waits for the element to become ready for inGen
	inPending bool
	inGen     uint64
	inStep    int
	inTmr     eventloop.Timer

	lastGen  uint64
	unsubscr func()
}

// New creates a sequencer and starts watching source changes
func New(el media.Element, st *store.Store, status StatusSource, opts Options) *Sequencer {
	steps := opts.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	clock := opts.Clock
	if clock == nil {
		panic("crossfade: Options.Clock is required")
	}

	s := &Sequencer{
		el:       el,
		store:    st,
		clock:    clock,
		steps:    steps,
		interval: duration / time.Duration(steps),
		logger:   logging.OrNop(opts.Logger),
	}
	if status != nil {
		s.lastGen = status.Status().Generation
		s.unsubscr = status.OnStatus(s.onStatus)
	}
	return s
}

// FadeOut ramps the gain to zero, runs onComplete, and restores the gain to
// the stored volume unless a fade-in took over. It returns false without
// doing anything while another fade-out runs.
func (s *Sequencer) FadeOut(onComplete func()) bool {
	if s.closed || s.fading {
		return false
	}
	s.fading = true
	s.outStep = 0
	s.outFrom = s.el.Volume()
	s.outDone = onComplete
	s.logger.Debug("fade out started", zap.Float64("from", s.outFrom), zap.Int("steps", s.steps))
	s.outTmr = s.clock.AfterFunc(s.interval, s.stepOut)
	return true
}

func (s *Sequencer) stepOut() {
	if s.closed || !s.fading {
		return
	}
	s.outStep++
	gain := s.outFrom * float64(s.steps-s.outStep) / float64(s.steps)
	if gain < 0 {
		gain = 0
	}
	s.el.SetVolume(gain)
	if s.outStep < s.steps {
		s.outTmr = s.clock.AfterFunc(s.interval, s.stepOut)
		return
	}

	s.outTmr = nil
	done := s.outDone
	s.outDone = nil
	if done != nil {
		done()
	}
	s.fading = false
	if s.closed {
		return
	}
	if !s.inPending && s.inTmr == nil {
		s.el.SetVolume(s.store.Snapshot().Volume)
	}
}

func (s *Sequencer) onStatus(st transport.Status) {
	if s.closed {
		return
	}
	if st.Generation != s.lastGen {
		s.lastGen = st.Generation
		s.cancelFadeIn()
		if !s.store.Snapshot().IsPlaying {
			return
		}
		s.inPending = true
		s.inGen = st.Generation
		s.el.SetVolume(0)
		s.logger.Debug("fade in armed",
			zap.Uint64(logging.FieldGeneration, st.Generation),
			zap.String(logging.FieldSource, st.Source),
		)
	}

	if !s.inPending || st.Generation != s.inGen {
		return
	}
	switch st.State {
	case model.MediaStateReady, model.MediaStatePlaying:
		s.inPending = false
		s.inStep = 0
		s.inTmr = s.clock.AfterFunc(s.interval, s.stepIn)
	case model.MediaStateError:
		s.cancelFadeIn()
		s.el.SetVolume(s.store.Snapshot().Volume)
	}
}

func (s *Sequencer) stepIn() {
	if s.closed || s.inTmr == nil {
		return
	}
	s.inStep++
	target := s.store.Snapshot().Volume
	s.el.SetVolume(target * float64(s.inStep) / float64(s.steps))
	if s.inStep < s.steps {
		s.inTmr = s.clock.AfterFunc(s.interval, s.stepIn)
		return
	}
	s.inTmr = nil
}

func (s *Sequencer) cancelFadeIn() {
	s.inPending = false
	if s.inTmr != nil {
		s.inTmr.Stop()
		s.inTmr = nil
	}
}

// Close cancels pending ramps and stops watching the transport. The element
// gain is left untouched.
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancelFadeIn()
	if s.outTmr != nil {
		s.outTmr.Stop()
		s.outTmr = nil
	}
	s.fading = false
	s.outDone = nil
	if s.unsubscr != nil {
		s.unsubscr()
		s.unsubscr = nil
	}
}
